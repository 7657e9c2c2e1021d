/*
Package utils contains decorators that are useful for every application:
panic recovery, savepoints, logging, metrics and action tagging, as well as
the Atomic helper used by controllers to apply a group of writes all at once.
*/
package utils

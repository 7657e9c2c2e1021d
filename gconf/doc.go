/*
Package gconf keeps one configuration object per extension in the store.

The configuration of a package lives under "_c:<package>". It is read from
the "conf" section of the genesis file and later patched by messages signed
by its owner, where only the fields set in the message change.
*/
package gconf

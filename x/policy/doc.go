/*
Package policy implements administrative policies shared by extensions.

An owner check authorizes configuration changes. A Pauser keeps a per package
flag that an extension consults before operations that may be suspended. A
Guard rejects a mutating call that is started while another mutating call of
the same extension is still running on the same store.
*/
package policy

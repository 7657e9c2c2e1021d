/*
Package x contains helpers shared by the extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.
The collectible registry and the marketplace ledger are built
from the sub-packages in this directory.

An extension never reads signatures directly. It is given an
Authenticator in its constructor and asks it who signed the
current transaction.
*/
package x

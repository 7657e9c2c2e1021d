/*
Package collectible implements a registry of unique collectible tokens.

A token is minted by its creator together with a metadata reference and a
royalty expressed in basis points. The registry keeps token records forever:
burning a token only marks it as gone, so a token id is never issued twice.

Custody of a token can be moved by its owner or by the marketplace operator
configured for the registry. The marketplace ledger uses the operator right
to hold listed tokens in its custodian account.

Metadata references that are IPFS content identifiers are stored in their
CIDv1 form, so two encodings of the same content are considered the same
reference.
*/
package collectible

/*
Package cash keeps a single currency balance per address and moves value
between wallets.

The marketplace depends on the CoinMover interface only. A listing fee and a
sale price are moved inside the same cache wrap as the custody change, so a
failed payment leaves no trace in the store.
*/
package cash

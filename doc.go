/*

Package artmarket defines interfaces used throughout the app, such as: storage,
transactions, handlers etc. It also contains helpers to work with context,
addresses, the model codec and abci results.

The token registry lives in x/collectible and the market ledger in
x/marketplace. Both are extensions built on the interfaces declared here and
can be used directly through their controllers or through message handlers
mounted on an app.Router.

*/
package artmarket

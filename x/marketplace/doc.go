/*
Package marketplace implements the market ledger on top of the collectible
token registry.

A seller lists a token by paying the listing fee. The ledger takes custody of
the token on behalf of the marketplace custodian and records a new MarketItem
together with a Listed event. The item is resolved exactly once, either by a
buyer paying the exact price (Sold) or by the seller withdrawing it
(Canceled). Custody moves to the buyer or back to the seller respectively.
Resolved items are kept forever and a token listed again gets a new item.

The ledger never reimplements ownership, it talks to the registry through the
Registry interface and moves value through a cash.CoinMover.
*/
package marketplace

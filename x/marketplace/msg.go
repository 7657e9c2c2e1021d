package marketplace

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

func init() {
	artmarket.RegisterMsg(&SellMsg{}, "marketplace/SellMsg")
	artmarket.RegisterMsg(&BuyMsg{}, "marketplace/BuyMsg")
	artmarket.RegisterMsg(&WithdrawMsg{}, "marketplace/WithdrawMsg")
	artmarket.RegisterMsg(&UpdateConfigurationMsg{}, "marketplace/UpdateConfigurationMsg")
}

const (
	pathSellMsg                = "market/sell"
	pathBuyMsg                 = "market/buy"
	pathWithdrawMsg            = "market/withdraw"
	pathUpdateConfigurationMsg = "market/update_configuration"
)

// SellMsg lists a token owned by the signer.
type SellMsg struct {
	TokenID uint64
	Price   uint64
	// Fee is the listing fee paid by the signer.
	Fee uint64
}

var _ artmarket.Msg = (*SellMsg)(nil)

func (SellMsg) Path() string {
	return pathSellMsg
}

func (m *SellMsg) Validate() error {
	var errs error
	if m.TokenID == 0 {
		errs = errors.Append(errs, errors.Field("TokenID", errors.ErrEmpty, "required"))
	}
	if m.Price < 1 {
		errs = errors.Append(errs, errors.Field("Price", ErrPriceTooLow, "got %d", m.Price))
	}
	return errs
}

func (m *SellMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *SellMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// BuyMsg buys the active item of a token, paying Price.
type BuyMsg struct {
	TokenID uint64
	Price   uint64
}

var _ artmarket.Msg = (*BuyMsg)(nil)

func (BuyMsg) Path() string {
	return pathBuyMsg
}

func (m *BuyMsg) Validate() error {
	if m.TokenID == 0 {
		return errors.Field("TokenID", errors.ErrEmpty, "required")
	}
	return nil
}

func (m *BuyMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *BuyMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// WithdrawMsg cancels the active item of a token listed by the signer.
type WithdrawMsg struct {
	TokenID uint64
}

var _ artmarket.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	if m.TokenID == 0 {
		return errors.Field("TokenID", errors.ErrEmpty, "required")
	}
	return nil
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// UpdateConfigurationMsg patches the ledger configuration. Only non zero
// fields of the patch are applied, use the controller to set a zero listing
// fee.
type UpdateConfigurationMsg struct {
	Patch *Configuration
}

var _ artmarket.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var errs error
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if len(m.Patch.AssetRegistry) != 0 {
		errs = errors.AppendField(errs, "Patch.AssetRegistry", m.Patch.AssetRegistry.Validate())
	}
	return errs
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

package collectible

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

func init() {
	artmarket.RegisterMsg(&MintMsg{}, "collectible/MintMsg")
	artmarket.RegisterMsg(&TransferMsg{}, "collectible/TransferMsg")
	artmarket.RegisterMsg(&BurnMsg{}, "collectible/BurnMsg")
	artmarket.RegisterMsg(&PauseMsg{}, "collectible/PauseMsg")
	artmarket.RegisterMsg(&UpdateConfigurationMsg{}, "collectible/UpdateConfigurationMsg")
}

const (
	pathMintMsg                = "collectible/mint"
	pathTransferMsg            = "collectible/transfer"
	pathBurnMsg                = "collectible/burn"
	pathPauseMsg               = "collectible/pause"
	pathUpdateConfigurationMsg = "collectible/update_configuration"
)

// MintMsg creates a new token owned by the signer.
type MintMsg struct {
	MetadataRef string
	// Royalty in basis points.
	Royalty uint32
}

var _ artmarket.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string {
	return pathMintMsg
}

func (m *MintMsg) Validate() error {
	errs := errors.AppendField(nil, "MetadataRef", validateMetadataRef(m.MetadataRef))
	if m.Royalty > MaxRoyalty {
		errs = errors.Append(errs, errors.Field("Royalty", ErrInvalidRoyalty, "%d not in [0, %d]", m.Royalty, MaxRoyalty))
	}
	return errs
}

func (m *MintMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *MintMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// TransferMsg moves custody of a token to the recipient.
type TransferMsg struct {
	TokenID   uint64
	Recipient artmarket.Address
}

var _ artmarket.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	if m.TokenID == 0 {
		errs = errors.Append(errs, errors.Field("TokenID", errors.ErrEmpty, "required"))
	}
	return errors.AppendField(errs, "Recipient", m.Recipient.Validate())
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// BurnMsg destroys a token owned by the signer.
type BurnMsg struct {
	TokenID uint64
}

var _ artmarket.Msg = (*BurnMsg)(nil)

func (BurnMsg) Path() string {
	return pathBurnMsg
}

func (m *BurnMsg) Validate() error {
	if m.TokenID == 0 {
		return errors.Field("TokenID", errors.ErrEmpty, "required")
	}
	return nil
}

func (m *BurnMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *BurnMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// PauseMsg pauses or resumes minting.
type PauseMsg struct {
	Paused bool
}

var _ artmarket.Msg = (*PauseMsg)(nil)

func (PauseMsg) Path() string {
	return pathPauseMsg
}

func (m *PauseMsg) Validate() error {
	return nil
}

func (m *PauseMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *PauseMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// UpdateConfigurationMsg patches the registry configuration. Only non zero
// fields of the patch are applied.
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
	if len(m.Patch.Marketplace) != 0 {
		errs = errors.AppendField(errs, "Patch.Marketplace", m.Patch.Marketplace.Validate())
	}
	return errs
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

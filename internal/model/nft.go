package model

// Attribute is a single trait of an NFT
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Collection describes the collection an NFT belongs to
type Collection struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Family      string `json:"family,omitempty"`
}

// NFTMetadata is the normalized metadata record returned for every token.
// Attributes is never nil; Collection is nil when the source names none.
type NFTMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
	Collection  *Collection `json:"collection,omitempty"`
}

// NFToken is an NFT as returned by the ledger's account_nfts command
type NFToken struct {
	NFTokenID    string `json:"NFTokenID"`
	URI          string `json:"URI,omitempty"`
	Issuer       string `json:"Issuer"`
	Flags        uint32 `json:"Flags"`
	NFTokenTaxon uint32 `json:"NFTokenTaxon"`
	TransferFee  uint16 `json:"TransferFee,omitempty"`
	Serial       uint32 `json:"nft_serial"`
}

// NFT represents one entry of GET /nfts
type NFT struct {
	TokenID     string      `json:"tokenId"`
	Issuer      string      `json:"issuer"`
	Taxon       uint32      `json:"taxon"`
	Serial      uint32      `json:"serial"`
	Flags       uint32      `json:"flags"`
	TransferFee string      `json:"transferFee"` // percent, e.g. "2.500"
	Metadata    NFTMetadata `json:"metadata"`
}

// NFTListResponse represents response for GET /nfts
type NFTListResponse struct {
	Address string `json:"address"`
	Network string `json:"network"`
	NFTs    []NFT  `json:"nfts"`
}

// Amount is an XRP amount (Currency "XRP", Value in XRP) or an issued
// currency amount as the ledger reports it.
type Amount struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer,omitempty"`
	Value    string `json:"value"`
}

// NFTOffer is an open sell offer for an NFT.
type NFTOffer struct {
	Index       string `json:"nft_offer_index"`
	Owner       string `json:"owner"`
	Amount      Amount `json:"amount"`
	Destination string `json:"destination,omitempty"`
	Expiration  uint32 `json:"expiration,omitempty"`
	Flags       uint32 `json:"flags"`
}

// NFTOffersRequest holds the query of GET /nfts/offers.
type NFTOffersRequest struct {
	TokenID string `validate:"required,len=64,hexadecimal"`
}

// NFTOffersResponse lists the sell offers of one NFT.
type NFTOffersResponse struct {
	TokenID string     `json:"tokenId"`
	Network string     `json:"network"`
	Offers  []NFTOffer `json:"offers"`
}

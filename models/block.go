package models

import (
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

type SignedBlock struct {
	Block         Block               `json:"block"`
	Justification types.Justification `json:"justification"`
}

// Block encoded with header and extrinsics. Extrinsics stay in their hex
// transport form so that one undecodable extrinsic does not hide the rest.
type Block struct {
	Header     types.Header `json:"header"`
	Extrinsics []string     `json:"extrinsics"`
}

// DecodeExtrinsics decodes every extrinsic of b. errs[i] is set for each
// extrinsic that could not be decoded.
func (b Block) DecodeExtrinsics() (xts []Extrinsic, errs []error) {
	xts = make([]Extrinsic, len(b.Extrinsics))
	errs = make([]error, len(b.Extrinsics))
	for i, s := range b.Extrinsics {
		xts[i], errs[i] = DecodeExtrinsicHex(s)
	}
	return
}

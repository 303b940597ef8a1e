package explorer

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// AddressCodec validates addresses and extracts them from output scripts.
type AddressCodec interface {
	ValidateAddress(address string) error
	DecodeAddresses(script []byte) ([]string, error)
}

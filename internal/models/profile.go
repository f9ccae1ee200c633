package models

// StoreProfile holds the shop details printed on generated bills.
type StoreProfile struct {
	StoreName string `yaml:"store_name"`
	GSTNumber string `yaml:"gst_number"`
}

package models

// Quota is the stored quota state of an owner.
type Quota struct {
	Limit int
	Used  int
}

// QuotaReport is what a quota query returns to the presentation layer.
type QuotaReport struct {
	Limit     int
	Used      int
	Remaining int
	Exceeded  bool
}

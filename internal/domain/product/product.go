package product

// Product is one record of the read-only catalog feed. Price keeps the
// feed's raw textual form ("Rs.1200", "Rs.1,200.50", "Rs.1200-450");
// ResolvePrice turns it into a number.
type Product struct {
	ID            int64
	Name          string
	Price         string
	SizeSelection bool
	ImageURL      string
}

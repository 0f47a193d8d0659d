package alert

import (
	"sort"

	"github.com/stockpilot/backend-go/internal/domain"
)

// Sentinel values surfaced when a product has no resolvable supplier or the
// chosen supplier has no contact on file.
const (
	NoSupplierName     = "No Supplier Found"
	NoContactAvailable = "No Contact Available"
)

// ResolvedSupplier is the supplier snapshot attached to alerts for one product.
type ResolvedSupplier struct {
	SupplierID           *int64
	Name                 string
	ContactEmail         string
	LeadTimeDays         int
	MinimumOrderQuantity int
}

// ResolveSuppliers picks at most one supplier per product from the catalog.
//
// Candidates are active links to active suppliers. Preference order is an
// explicit comparator: preferred links first, then lowest cost price; the
// first candidate after a stable sort wins. Products without any candidate
// are absent from the result and get the sentinel from NoSupplier.
func ResolveSuppliers(links []domain.SupplierLinkRow) map[int64]ResolvedSupplier {
	candidates := make(map[int64][]domain.SupplierLinkRow)
	for _, link := range links {
		if !link.IsActive || link.SupplierStatus != "active" {
			continue
		}
		candidates[link.ProductID] = append(candidates[link.ProductID], link)
	}

	resolved := make(map[int64]ResolvedSupplier, len(candidates))
	for productID, rows := range candidates {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].IsPreferredSupplier != rows[j].IsPreferredSupplier {
				return rows[i].IsPreferredSupplier
			}
			return rows[i].CostPrice < rows[j].CostPrice
		})

		best := rows[0]
		supplierID := best.SupplierID
		resolved[productID] = ResolvedSupplier{
			SupplierID:           &supplierID,
			Name:                 best.SupplierName,
			ContactEmail:         resolveContact(best),
			LeadTimeDays:         best.LeadTimeDays,
			MinimumOrderQuantity: best.MinimumOrderQuantity,
		}
	}

	return resolved
}

// NoSupplier returns the sentinel snapshot used when no active supplier link
// exists for a product.
func NoSupplier() ResolvedSupplier {
	return ResolvedSupplier{
		Name:         NoSupplierName,
		ContactEmail: NoContactAvailable,
	}
}

func resolveContact(link domain.SupplierLinkRow) string {
	if link.SupplierEmail != nil && *link.SupplierEmail != "" {
		return *link.SupplierEmail
	}
	if link.SupplierContact != nil && *link.SupplierContact != "" {
		return *link.SupplierContact
	}
	return NoContactAvailable
}

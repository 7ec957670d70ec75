package planning

import (
	"fmt"

	"restock/pkg/domain/entities"
	"restock/pkg/domain/repositories"
	"restock/pkg/milp"
)

// orderPair identifies one eligible (item, supplier) combination.
type orderPair struct {
	item     entities.ItemID
	supplier entities.SupplierID
}

// purchaseModel couples the assembled MILP with the bookkeeping needed
// to read a solution back in domain terms.
type purchaseModel struct {
	model  *milp.Model
	pairs  []orderPair
	orders map[orderPair]*milp.Var
	used   map[entities.SupplierID]*milp.Var
}

// buildModel translates the catalog into a MILP: one integer pallet
// variable per eligible pair, a cost-minimizing objective, and the
// five constraint families. Variables carry no upper bounds of their
// own — every cap is an explicit named constraint so infeasibility can
// be traced to the entity that produced it. Feasibility is not
// pre-validated here; a hopeless model is surfaced by the solver.
func buildModel(catalog repositories.CatalogRepository, cfg Config) *purchaseModel {
	pm := &purchaseModel{
		model:  milp.NewModel("stock_purchasing"),
		orders: make(map[orderPair]*milp.Var),
		used:   make(map[entities.SupplierID]*milp.Var),
	}
	m := pm.model

	// Decision variables: pallets of item i ordered from supplier j,
	// in sorted (item, supplier) order for deterministic solves.
	for _, item := range catalog.Items() {
		for _, supplierID := range catalog.EligibleSuppliers(item.ID) {
			entry, _ := catalog.Pricing(item.ID, supplierID)
			pair := orderPair{item: item.ID, supplier: supplierID}
			v := m.NewIntVar(fmt.Sprintf("x_%s_%s", item.ID, supplierID))
			m.AddObjectiveTerm(v, entry.CostPerPallet.InexactFloat64())
			pm.orders[pair] = v
			pm.pairs = append(pm.pairs, pair)
		}
	}

	// Stock constraints are denominated in units, so pallet variables
	// are scaled by units_per_pallet here and nowhere else.
	for _, item := range catalog.Items() {
		var terms []milp.Term
		for _, supplierID := range catalog.EligibleSuppliers(item.ID) {
			entry, _ := catalog.Pricing(item.ID, supplierID)
			v := pm.orders[orderPair{item: item.ID, supplier: supplierID}]
			terms = append(terms, milp.Term{Var: v, Coef: float64(entry.UnitsPerPallet)})
		}
		m.AddConstraint(fmt.Sprintf("min_stock_%s", item.ID),
			terms, milp.GreaterEq, float64(item.MinStock-item.CurrentStock))
		m.AddConstraint(fmt.Sprintf("max_stock_%s", item.ID),
			terms, milp.LessEq, float64(item.MaxStock-item.CurrentStock))
	}

	// Supplier constraints stay in pallet units. Suppliers pricing no
	// items get none.
	for _, supplier := range catalog.Suppliers() {
		items := catalog.EligibleItems(supplier.ID)
		if len(items) == 0 {
			continue
		}
		terms := make([]milp.Term, 0, len(items))
		for _, itemID := range items {
			v := pm.orders[orderPair{item: itemID, supplier: supplier.ID}]
			terms = append(terms, milp.Term{Var: v, Coef: 1})
		}

		m.AddConstraint(fmt.Sprintf("supplier_max_%s", supplier.ID),
			terms, milp.LessEq, float64(supplier.MaxPallets))

		switch {
		case cfg.MinOrderPolicy == MinOrderUnconditional:
			m.AddConstraint(fmt.Sprintf("supplier_min_%s", supplier.ID),
				terms, milp.GreaterEq, float64(supplier.MinPallets))
		case supplier.MinPallets > 0:
			// Conditional policy: the minimum binds only when the
			// supplier is used. A binary indicator linked with
			// M = max_pallets keeps unneeded suppliers out of the plan.
			u := m.NewBinaryVar(fmt.Sprintf("used_%s", supplier.ID))
			pm.used[supplier.ID] = u

			link := make([]milp.Term, len(terms), len(terms)+1)
			copy(link, terms)
			link = append(link, milp.Term{Var: u, Coef: -float64(supplier.MaxPallets)})
			m.AddConstraint(fmt.Sprintf("supplier_link_%s", supplier.ID),
				link, milp.LessEq, 0)

			minTerms := make([]milp.Term, len(terms), len(terms)+1)
			copy(minTerms, terms)
			minTerms = append(minTerms, milp.Term{Var: u, Coef: -float64(supplier.MinPallets)})
			m.AddConstraint(fmt.Sprintf("supplier_min_%s", supplier.ID),
				minTerms, milp.GreaterEq, 0)
		}
	}

	// Expiry/lead-time cap per eligible pair: an order must not push
	// available stock past what can sell before the item expires plus
	// what sells while the order is in transit.
	for _, pair := range pm.pairs {
		item, _ := catalog.Item(pair.item)
		supplier, _ := catalog.Supplier(pair.supplier)
		entry, _ := catalog.Pricing(pair.item, pair.supplier)

		sellable := ExpectedDemand(item, demandHorizon(item, cfg)) +
			ExpectedLeadTimeDemand(item, supplier) -
			float64(item.CurrentStock)
		m.AddConstraint(fmt.Sprintf("expiry_%s_%s", pair.item, pair.supplier),
			[]milp.Term{{Var: pm.orders[pair], Coef: float64(entry.UnitsPerPallet)}},
			milp.LessEq, sellable)
	}

	return pm
}

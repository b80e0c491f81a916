package types

import (
	"fmt"
	"sort"
)

// References lists, per table, the tables its identifiers point at. Several
// references cross logical databases and are enforced by generation order
// rather than by foreign keys.
var References = map[string][]string{
	TableDepartments:         nil,
	TableEmployees:           {TableDepartments, TableEmployees},
	TableTrainingPrograms:    nil,
	TableEmployeeTraining:    {TableEmployees, TableTrainingPrograms},
	TablePerformanceReviews:  {TableEmployees},
	TableEmployeeAssignments: {TableEmployees, TableCustomerProfiles},

	TableCustomerProfiles:    {TableCustomers, TableEmployees},
	TableCampaigns:           {TableEmployees},
	TableInteractions:        {TableCustomers, TableEmployees},
	TableSatisfactionSurveys: {TableInteractions, TableCustomers},
	TableComplaints:          {TableCustomers, TableEmployees},
	TableCampaignResponses:   {TableCampaigns, TableCustomers},

	TableCustomers:            nil,
	TableAccounts:             {TableCustomers},
	TableAccountRelationships: {TableAccounts},
	TableTransactions:         {TableAccounts, TableEmployees},

	TableLoanApplications:   {TableCustomers, TableEmployees},
	TableLoans:              {TableLoanApplications, TableCustomers, TableAccounts, TableEmployees},
	TableCollateral:         {TableLoans},
	TableRepaymentSchedules: {TableLoans},
	TableLoanGuarantors:     {TableLoans},
	TableRiskAssessments:    {TableLoanApplications, TableLoans, TableEmployees},
}

type DependencyGraph struct {
	deps  map[string][]string
	order []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{deps: make(map[string][]string)}
}

func (g *DependencyGraph) AddTable(name string, dependsOn ...string) {
	g.deps[name] = append(g.deps[name], dependsOn...)
}

// BuildInsertionOrder sorts tables so every table follows the tables it
// depends on. Ties are broken by name.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if temp[name] {
			return fmt.Errorf("circular dependency detected involving table: %s", name)
		}
		if visited[name] {
			return nil
		}

		temp[name] = true
		deps := append([]string(nil), g.deps[name]...)
		sort.Strings(deps)
		for _, dep := range deps {
			if dep == name {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	names := make([]string, 0, len(g.deps))
	for name := range g.deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) Order() []string {
	return g.order
}

// InsertionOrder returns every table of every logical database in a valid
// insertion order.
func InsertionOrder() ([]string, error) {
	g := NewDependencyGraph()
	for table, deps := range References {
		g.AddTable(table, deps...)
	}
	return g.BuildInsertionOrder()
}

// TablesIn returns the tables of one logical database in insertion order.
func TablesIn(database string) ([]string, error) {
	tables, ok := Schema[database]
	if !ok {
		return nil, fmt.Errorf("unknown logical database %q", database)
	}
	order, err := InsertionOrder()
	if err != nil {
		return nil, err
	}

	in := make(map[string]bool, len(tables))
	for _, t := range tables {
		in[t] = true
	}
	out := make([]string, 0, len(tables))
	for _, t := range order {
		if in[t] {
			out = append(out, t)
		}
	}
	return out, nil
}

// CheckOrder reports the first table in order that precedes one of its
// references.
func CheckOrder(order []string) error {
	pos := make(map[string]int, len(order))
	for i, table := range order {
		pos[table] = i
	}
	for i, table := range order {
		for _, dep := range References[table] {
			if dep == table {
				continue
			}
			j, ok := pos[dep]
			if !ok || j > i {
				return fmt.Errorf("table %s is written before %s", table, dep)
			}
		}
	}
	return nil
}

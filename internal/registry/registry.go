// Package registry keeps track of every synthetic identifier produced during a
// generation run and of how those identifiers reference each other across the
// logical databases.
//
// A Registry is owned by the orchestrator and handed to each generator. It is
// not safe for concurrent use.
package registry

import "github.com/Rana718/demoseed/internal/types"

type Registry struct {
	employeeIDs        []string
	employeeRoles      map[string]types.Role
	loanOfficers       []string
	insuranceAgents    []string
	complianceOfficers []string
	departmentIDs      []string
	trainingPrograms   []string

	customerIDs        []string
	customerToAccounts map[string][]string
	accountIDs         []string

	campaignIDs    []string
	interactionIDs []string

	applicationIDs []string
	approvedIDs    []string
	loanIDs        []string
}

// Stats holds the number of identifiers registered per category.
type Stats struct {
	Employees            int `json:"employees" yaml:"employees"`
	LoanOfficers         int `json:"loan_officers" yaml:"loan_officers"`
	InsuranceAgents      int `json:"insurance_agents" yaml:"insurance_agents"`
	ComplianceOfficers   int `json:"compliance_officers" yaml:"compliance_officers"`
	Departments          int `json:"departments" yaml:"departments"`
	TrainingPrograms     int `json:"training_programs" yaml:"training_programs"`
	Customers            int `json:"customers" yaml:"customers"`
	Accounts             int `json:"accounts" yaml:"accounts"`
	Campaigns            int `json:"campaigns" yaml:"campaigns"`
	Interactions         int `json:"interactions" yaml:"interactions"`
	LoanApplications     int `json:"loan_applications" yaml:"loan_applications"`
	ApprovedApplications int `json:"approved_applications" yaml:"approved_applications"`
	Loans                int `json:"loans" yaml:"loans"`
}

func New() *Registry {
	return &Registry{
		employeeRoles:      make(map[string]types.Role),
		customerToAccounts: make(map[string][]string),
	}
}

// AddEmployee registers an employee and files it under its role category.
func (r *Registry) AddEmployee(id string, role types.Role) {
	r.employeeIDs = append(r.employeeIDs, id)
	r.employeeRoles[id] = role

	switch role.Category() {
	case types.CategoryLoanOfficer:
		r.loanOfficers = append(r.loanOfficers, id)
	case types.CategoryInsuranceAgent:
		r.insuranceAgents = append(r.insuranceAgents, id)
	case types.CategoryComplianceOfficer:
		r.complianceOfficers = append(r.complianceOfficers, id)
	}
}

// EmployeeRole returns the role recorded when the employee was added.
func (r *Registry) EmployeeRole(id string) (types.Role, bool) {
	role, ok := r.employeeRoles[id]
	return role, ok
}

func (r *Registry) AddCustomer(id string) {
	r.customerIDs = append(r.customerIDs, id)
	r.customerToAccounts[id] = []string{}
}

// AddAccount registers an account. The link to the owning customer is only
// recorded when the customer is known.
func (r *Registry) AddAccount(id, customerID string) {
	r.accountIDs = append(r.accountIDs, id)
	if owned, ok := r.customerToAccounts[customerID]; ok {
		r.customerToAccounts[customerID] = append(owned, id)
	}
}

func (r *Registry) AddDepartment(id string)      { r.departmentIDs = append(r.departmentIDs, id) }
func (r *Registry) AddCampaign(id string)        { r.campaignIDs = append(r.campaignIDs, id) }
func (r *Registry) AddTrainingProgram(id string) { r.trainingPrograms = append(r.trainingPrograms, id) }
func (r *Registry) AddInteraction(id string)     { r.interactionIDs = append(r.interactionIDs, id) }
func (r *Registry) AddLoan(id string)            { r.loanIDs = append(r.loanIDs, id) }

func (r *Registry) AddLoanApplication(id string, approved bool) {
	r.applicationIDs = append(r.applicationIDs, id)
	if approved {
		r.approvedIDs = append(r.approvedIDs, id)
	}
}

// The readers below return read-only views. Their capacity is capped, so a
// caller's append copies instead of writing into the registry.

func (r *Registry) EmployeeIDs() []string            { return view(r.employeeIDs) }
func (r *Registry) LoanOfficers() []string           { return view(r.loanOfficers) }
func (r *Registry) InsuranceAgents() []string        { return view(r.insuranceAgents) }
func (r *Registry) ComplianceOfficers() []string     { return view(r.complianceOfficers) }
func (r *Registry) DepartmentIDs() []string          { return view(r.departmentIDs) }
func (r *Registry) TrainingProgramIDs() []string     { return view(r.trainingPrograms) }
func (r *Registry) CustomerIDs() []string            { return view(r.customerIDs) }
func (r *Registry) AccountIDs() []string             { return view(r.accountIDs) }
func (r *Registry) CampaignIDs() []string            { return view(r.campaignIDs) }
func (r *Registry) InteractionIDs() []string         { return view(r.interactionIDs) }
func (r *Registry) LoanApplicationIDs() []string     { return view(r.applicationIDs) }
func (r *Registry) ApprovedApplicationIDs() []string { return view(r.approvedIDs) }
func (r *Registry) LoanIDs() []string                { return view(r.loanIDs) }

// AccountsOf returns the accounts owned by a customer.
func (r *Registry) AccountsOf(customerID string) []string {
	return view(r.customerToAccounts[customerID])
}

// HasCustomer reports whether the customer was registered.
func (r *Registry) HasCustomer(id string) bool {
	_, ok := r.customerToAccounts[id]
	return ok
}

// HasEmployee reports whether the employee was registered.
func (r *Registry) HasEmployee(id string) bool {
	_, ok := r.employeeRoles[id]
	return ok
}

func (r *Registry) Stats() Stats {
	return Stats{
		Employees:            len(r.employeeIDs),
		LoanOfficers:         len(r.loanOfficers),
		InsuranceAgents:      len(r.insuranceAgents),
		ComplianceOfficers:   len(r.complianceOfficers),
		Departments:          len(r.departmentIDs),
		TrainingPrograms:     len(r.trainingPrograms),
		Customers:            len(r.customerIDs),
		Accounts:             len(r.accountIDs),
		Campaigns:            len(r.campaignIDs),
		Interactions:         len(r.interactionIDs),
		LoanApplications:     len(r.applicationIDs),
		ApprovedApplications: len(r.approvedIDs),
		Loans:                len(r.loanIDs),
	}
}

// Clone returns a deep copy. Mutating the copy leaves r untouched.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		employeeIDs:        clone(r.employeeIDs),
		employeeRoles:      make(map[string]types.Role, len(r.employeeRoles)),
		loanOfficers:       clone(r.loanOfficers),
		insuranceAgents:    clone(r.insuranceAgents),
		complianceOfficers: clone(r.complianceOfficers),
		departmentIDs:      clone(r.departmentIDs),
		trainingPrograms:   clone(r.trainingPrograms),
		customerIDs:        clone(r.customerIDs),
		customerToAccounts: make(map[string][]string, len(r.customerToAccounts)),
		accountIDs:         clone(r.accountIDs),
		campaignIDs:        clone(r.campaignIDs),
		interactionIDs:     clone(r.interactionIDs),
		applicationIDs:     clone(r.applicationIDs),
		approvedIDs:        clone(r.approvedIDs),
		loanIDs:            clone(r.loanIDs),
	}
	for id, role := range r.employeeRoles {
		c.employeeRoles[id] = role
	}
	for id, accounts := range r.customerToAccounts {
		c.customerToAccounts[id] = append([]string{}, accounts...)
	}
	return c
}

func view(s []string) []string {
	return s[:len(s):len(s)]
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

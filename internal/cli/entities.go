package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"eventdesk/internal/core"
	"eventdesk/pkg/domain"

	"github.com/spf13/cobra"
)

type fieldFlag struct {
	name  string
	usage string
	dst   *string
}

// entitySpec describes how one entity type is exposed on the command line.
// F is the raw form filled from flags, T the stored record.
type entitySpec[T, F any] struct {
	name    string
	aliases []string
	id      func(*F) *string
	fields  func(*F) []fieldFlag
	columns columns[T]

	add    func(*core.Service, context.Context, F) (T, domain.Result, error)
	modify func(*core.Service, context.Context, string, F) (T, domain.Result, error)
	remove func(*core.Service, context.Context, string) (T, domain.Result, error)
	find   func(*core.Service, context.Context, string) (T, error)
	list   func(*core.Service, context.Context) ([]T, error)

	// listFilter optionally adds a flag to list that narrows the result.
	listFilter *listFilter[T]
}

type listFilter[T any] struct {
	flag  string
	usage string
	list  func(*core.Service, context.Context, string) ([]T, error)
}

func entityCommand[T, F any](a *app, spec entitySpec[T, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.name,
		Aliases: spec.aliases,
		Short:   fmt.Sprintf("Manage %s records", spec.name),
	}

	var addForm F
	add := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a %s", spec.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, res, err := spec.add(a.svc, cmd.Context(), addForm)
			if err != nil {
				return err
			}
			return printMutation(a, spec.columns, rec, res)
		},
	}
	add.Flags().StringVar(spec.id(&addForm), "id", "", fmt.Sprintf("Unique %s id", spec.name))
	bindFields(add, spec.fields(&addForm))

	var modForm F
	modify := &cobra.Command{
		Use:   "modify <id>",
		Short: fmt.Sprintf("Change fields of a %s; omitted or blank flags keep the stored value", spec.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, res, err := spec.modify(a.svc, cmd.Context(), args[0], modForm)
			if err != nil {
				return err
			}
			return printMutation(a, spec.columns, rec, res)
		},
	}
	bindFields(modify, spec.fields(&modForm))

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s", spec.name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, res, err := spec.remove(a.svc, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.output != "table" {
				a.printWarnings(res)
				return render(a.stdout, a.output, spec.columns, rec)
			}
			for _, change := range res.Changes {
				fmt.Fprintf(a.stdout, "deleted %s %s\n", change.Entity, changeID(change))
			}
			a.printWarnings(res)
			return nil
		},
	}

	show := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   fmt.Sprintf("Show one %s", spec.name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := spec.find(a.svc, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderList(a.stdout, a.output, spec.columns, []T{rec}, true)
		},
	}

	var filter string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List every %s ordered by id", spec.name),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				recs []T
				err  error
			)
			if spec.listFilter != nil && filter != "" {
				recs, err = spec.listFilter.list(a.svc, cmd.Context(), filter)
			} else {
				recs, err = spec.list(a.svc, cmd.Context())
			}
			if err != nil {
				return err
			}
			return renderList(a.stdout, a.output, spec.columns, recs, false)
		},
	}
	if spec.listFilter != nil {
		list.Flags().StringVar(&filter, spec.listFilter.flag, "", spec.listFilter.usage)
	}

	cmd.AddCommand(add, modify, remove, show, list)
	return cmd
}

func bindFields(cmd *cobra.Command, fields []fieldFlag) {
	for _, f := range fields {
		cmd.Flags().StringVar(f.dst, f.name, "", f.usage)
	}
}

func printMutation[T any](a *app, cols columns[T], rec T, res domain.Result) error {
	a.printWarnings(res)
	return render(a.stdout, a.output, cols, rec)
}

func (a *app) printWarnings(res domain.Result) {
	if res.Persisted() {
		return
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(a.stderr, "warning: %v (change kept in memory only)\n", w)
	}
}

func changeID(c domain.Change) string {
	rec := c.Before
	if rec == nil {
		rec = c.After
	}
	switch r := rec.(type) {
	case domain.Employee:
		return r.ID
	case domain.Client:
		return r.ID
	case domain.Supplier:
		return r.ID
	case domain.Event:
		return r.ID
	default:
		return "?"
	}
}

func amount(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func employeeSpec() entitySpec[domain.Employee, domain.EmployeeForm] {
	return entitySpec[domain.Employee, domain.EmployeeForm]{
		name:    "employee",
		aliases: []string{"employees", "emp"},
		id:      func(f *domain.EmployeeForm) *string { return &f.ID },
		fields: func(f *domain.EmployeeForm) []fieldFlag {
			return []fieldFlag{
				{"name", "Full name", &f.Name},
				{"address", "Postal address", &f.Address},
				{"contact", "Phone or email", &f.Contact},
				{"job-title", "Job title", &f.JobTitle},
				{"salary", "Salary (decimal number)", &f.Salary},
			}
		},
		columns: columns[domain.Employee]{
			headers: []string{"ID", "NAME", "ADDRESS", "CONTACT", "JOB TITLE", "SALARY"},
			row: func(e domain.Employee) []string {
				return []string{e.ID, e.Name, e.Address, e.Contact, e.JobTitle, amount(e.Salary)}
			},
		},
		add: (*core.Service).AddEmployee,
		modify: func(s *core.Service, ctx context.Context, id string, f domain.EmployeeForm) (domain.Employee, domain.Result, error) {
			update, err := f.Update()
			if err != nil {
				return domain.Employee{}, domain.Result{}, err
			}
			return s.ModifyEmployee(ctx, id, update)
		},
		remove: (*core.Service).DeleteEmployee,
		find:   (*core.Service).FindEmployee,
		list:   (*core.Service).ListEmployees,
	}
}

func clientSpec() entitySpec[domain.Client, domain.ClientForm] {
	return entitySpec[domain.Client, domain.ClientForm]{
		name:    "client",
		aliases: []string{"clients"},
		id:      func(f *domain.ClientForm) *string { return &f.ID },
		fields: func(f *domain.ClientForm) []fieldFlag {
			return []fieldFlag{
				{"name", "Client name", &f.Name},
				{"address", "Postal address", &f.Address},
				{"contact", "Phone or email", &f.Contact},
				{"budget", "Budget (decimal number)", &f.Budget},
			}
		},
		columns: columns[domain.Client]{
			headers: []string{"ID", "NAME", "ADDRESS", "CONTACT", "BUDGET"},
			row: func(c domain.Client) []string {
				return []string{c.ID, c.Name, c.Address, c.Contact, amount(c.Budget)}
			},
		},
		add: (*core.Service).AddClient,
		modify: func(s *core.Service, ctx context.Context, id string, f domain.ClientForm) (domain.Client, domain.Result, error) {
			update, err := f.Update()
			if err != nil {
				return domain.Client{}, domain.Result{}, err
			}
			return s.ModifyClient(ctx, id, update)
		},
		remove: (*core.Service).DeleteClient,
		find:   (*core.Service).FindClient,
		list:   (*core.Service).ListClients,
	}
}

func supplierSpec() entitySpec[domain.Supplier, domain.SupplierForm] {
	return entitySpec[domain.Supplier, domain.SupplierForm]{
		name:    "supplier",
		aliases: []string{"suppliers"},
		id:      func(f *domain.SupplierForm) *string { return &f.ID },
		fields: func(f *domain.SupplierForm) []fieldFlag {
			return []fieldFlag{
				{"name", "Supplier name", &f.Name},
				{"service-type", "Service provided (catering, music, ...)", &f.ServiceType},
				{"contact", "Phone or email", &f.Contact},
			}
		},
		columns: columns[domain.Supplier]{
			headers: []string{"ID", "NAME", "SERVICE", "CONTACT"},
			row: func(s domain.Supplier) []string {
				return []string{s.ID, s.Name, s.ServiceType, s.Contact}
			},
		},
		add: (*core.Service).AddSupplier,
		modify: func(s *core.Service, ctx context.Context, id string, f domain.SupplierForm) (domain.Supplier, domain.Result, error) {
			return s.ModifySupplier(ctx, id, f.Update())
		},
		remove: (*core.Service).DeleteSupplier,
		find:   (*core.Service).FindSupplier,
		list:   (*core.Service).ListSuppliers,
	}
}

func eventSpec() entitySpec[domain.Event, domain.EventForm] {
	return entitySpec[domain.Event, domain.EventForm]{
		name:    "event",
		aliases: []string{"events"},
		id:      func(f *domain.EventForm) *string { return &f.ID },
		fields: func(f *domain.EventForm) []fieldFlag {
			return []fieldFlag{
				{"type", "Event type (wedding, conference, ...)", &f.Type},
				{"date", "Event date", &f.Date},
				{"venue", "Venue", &f.Venue},
				{"client", "Id of the client the event is organised for", &f.ClientID},
			}
		},
		columns: columns[domain.Event]{
			headers: []string{"ID", "TYPE", "DATE", "VENUE", "CLIENT", "GUESTS", "SUPPLIERS"},
			row: func(ev domain.Event) []string {
				return []string{ev.ID, ev.Type, ev.Date, ev.Venue, ev.ClientID,
					strings.Join(ev.GuestList, ","), strings.Join(ev.SupplierIDs, ",")}
			},
		},
		add: (*core.Service).AddEvent,
		modify: func(s *core.Service, ctx context.Context, id string, f domain.EventForm) (domain.Event, domain.Result, error) {
			return s.ModifyEvent(ctx, id, f.Update())
		},
		remove: (*core.Service).DeleteEvent,
		find:   (*core.Service).FindEvent,
		list:   (*core.Service).ListEvents,
		listFilter: &listFilter[domain.Event]{
			flag:  "client",
			usage: "Only events organised for this client id",
			list:  (*core.Service).EventsForClient,
		},
	}
}

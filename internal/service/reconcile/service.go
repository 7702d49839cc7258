package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/reconciliation"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
)

type ReconcileServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	calendarRepo   schedule.CalendarRepository
	assignmentRepo schedule.AssignmentRepository
	exceptionRepo  schedule.ExceptionRepository
	timeOffRepo    timeoff.TimeOffRepository
	punchRepo      punch.EventRepository
	workEntryRepo  workentry.WorkEntryRepository
	opts           Options
	loc            *time.Location
	logger         *slog.Logger
}

func NewReconcileService(
	employeeRepo employee.EmployeeRepository,
	calendarRepo schedule.CalendarRepository,
	assignmentRepo schedule.AssignmentRepository,
	exceptionRepo schedule.ExceptionRepository,
	timeOffRepo timeoff.TimeOffRepository,
	punchRepo punch.EventRepository,
	workEntryRepo workentry.WorkEntryRepository,
	opts Options,
	loc *time.Location,
	logger *slog.Logger,
) reconciliation.Service {
	return &ReconcileServiceImpl{
		employeeRepo:   employeeRepo,
		calendarRepo:   calendarRepo,
		assignmentRepo: assignmentRepo,
		exceptionRepo:  exceptionRepo,
		timeOffRepo:    timeOffRepo,
		punchRepo:      punchRepo,
		workEntryRepo:  workEntryRepo,
		opts:           opts,
		loc:            loc,
		logger:         logger,
	}
}

// Run implements reconciliation.Service.
func (s *ReconcileServiceImpl) Run(ctx context.Context, req reconciliation.RunRequest) (reconciliation.RunReport, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.RunReport{}, err
	}
	from, to, err := s.parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		return reconciliation.RunReport{}, err
	}

	employees, err := s.loadEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return reconciliation.RunReport{}, err
	}
	if len(employees) == 0 {
		return reconciliation.RunReport{}, reconciliation.ErrNoEmployees
	}

	snap, err := s.buildSnapshot(ctx, employees, from, to)
	if err != nil {
		return reconciliation.RunReport{}, fmt.Errorf("failed to prefetch reconciliation snapshot: %w", err)
	}

	s.logger.Info("reconciliation run started",
		slog.Int("employees", len(employees)),
		slog.String("from", req.DateFrom),
		slog.String("to", req.DateTo),
	)

	results := s.fanOut(employees, snap)

	report := reconciliation.RunReport{
		HourTotals:         map[workentry.Category]decimal.Decimal{},
		EmployeesProcessed: len(employees),
	}
	for _, r := range results {
		report.Entries = append(report.Entries, r.entries...)
		report.Inconsistencies = append(report.Inconsistencies, r.added...)
		report.DroppedPunches = append(report.DroppedPunches, r.dropped...)
		report.Absences = append(report.Absences, r.absences...)
	}
	sortEntries(report.Entries)
	sortInconsistencies(report.Inconsistencies)
	sortInconsistencies(report.DroppedPunches)
	sort.SliceStable(report.Absences, func(i, j int) bool {
		if report.Absences[i].EmployeeID != report.Absences[j].EmployeeID {
			return report.Absences[i].EmployeeID < report.Absences[j].EmployeeID
		}
		return report.Absences[i].Date.Before(report.Absences[j].Date)
	})

	for _, e := range report.Entries {
		minutes := decimal.NewFromInt(int64(e.EndAt.Sub(e.StartAt) / time.Minute))
		hours := minutes.DivRound(decimal.NewFromInt(60), 2)
		report.HourTotals[e.Category] = report.HourTotals[e.Category].Add(hours)
	}

	if err := s.workEntryRepo.SaveRunResults(ctx, report.Entries, report.Inconsistencies); err != nil {
		return reconciliation.RunReport{}, fmt.Errorf("failed to persist reconciliation results: %w", err)
	}

	s.logger.Info("reconciliation run finished",
		slog.Int("entries", len(report.Entries)),
		slog.Int("autocompleted", len(report.Inconsistencies)),
		slog.Int("dropped", len(report.DroppedPunches)),
		slog.Int("absences", len(report.Absences)),
	)
	return report, nil
}

// ResolveSchedule implements reconciliation.Service.
func (s *ReconcileServiceImpl) ResolveSchedule(ctx context.Context, employeeID string, date time.Time) (schedule.DaySchedule, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return schedule.DaySchedule{}, err
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	snap, err := s.buildSnapshot(ctx, []employee.Employee{emp}, local, local)
	if err != nil {
		return schedule.DaySchedule{}, fmt.Errorf("failed to prefetch schedule data: %w", err)
	}
	return Resolve(snap, employeeID, local, time.Time{}), nil
}

func (s *ReconcileServiceImpl) parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", fromStr, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, reconciliation.ErrInvalidDateRange
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, reconciliation.ErrInvalidDateRange
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, reconciliation.ErrInvalidDateRange
	}
	return from, to, nil
}

func (s *ReconcileServiceImpl) loadEmployees(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		emps, err := s.employeeRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		return emps, nil
	}
	emps, err := s.employeeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return emps, nil
}

// buildSnapshot bulk-prefetches everything the per-employee loop needs,
// including one look-ahead day for special-shift stitching and the
// trailing grace window for counters.
func (s *ReconcileServiceImpl) buildSnapshot(ctx context.Context, employees []employee.Employee, from, to time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		Loc:           s.loc,
		Options:       s.opts,
		From:          from,
		To:            to,
		Employees:     map[string]employee.Employee{},
		Calendars:     map[string]schedule.Calendar{},
		DeptCalendars: map[string][]schedule.Calendar{},
		Assignments:   map[string][]schedule.CalendarAssignment{},
		Exceptions:    map[string][]schedule.ShiftException{},
		Periods:       map[string][]timeoff.Period{},
		Lactations:    map[string][]timeoff.LactationPeriod{},
		Counters:      map[string]map[string]int{},
		Punches:       map[string][]punch.Event{},
	}

	ids := make([]string, 0, len(employees))
	calendarIDs := map[string]bool{}
	for _, emp := range employees {
		snap.Employees[emp.ID] = emp
		ids = append(ids, emp.ID)
		if emp.CalendarID != nil {
			calendarIDs[*emp.CalendarID] = true
		}
	}

	lookAhead := to.AddDate(0, 0, 1)

	assignments, err := s.assignmentRepo.ListForEmployees(ctx, ids, from, lookAhead)
	if err != nil {
		return nil, fmt.Errorf("list calendar assignments: %w", err)
	}
	for _, a := range assignments {
		a.StartDate = localDate(a.StartDate, s.loc)
		if a.EndDate != nil {
			end := localDate(*a.EndDate, s.loc)
			a.EndDate = &end
		}
		snap.Assignments[a.EmployeeID] = append(snap.Assignments[a.EmployeeID], a)
		calendarIDs[a.CalendarID] = true
	}

	exceptions, err := s.exceptionRepo.ListApprovedForEmployees(ctx, ids, from, lookAhead)
	if err != nil {
		return nil, fmt.Errorf("list shift exceptions: %w", err)
	}
	for _, ex := range exceptions {
		ex.DateFrom = localDate(ex.DateFrom, s.loc)
		ex.DateTo = localDate(ex.DateTo, s.loc)
		snap.Exceptions[ex.EmployeeID] = append(snap.Exceptions[ex.EmployeeID], ex)
		if ex.CalendarID != nil {
			calendarIDs[*ex.CalendarID] = true
		}
	}

	calIDs := make([]string, 0, len(calendarIDs))
	for id := range calendarIDs {
		calIDs = append(calIDs, id)
	}
	calendars, err := s.calendarRepo.ListByIDs(ctx, calIDs)
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	for _, cal := range calendars {
		snap.Calendars[cal.ID] = cal
	}

	if s.opts.FallbackMode == "department" {
		seen := map[string]bool{}
		for _, emp := range employees {
			if emp.Department == "" || seen[emp.Department] {
				continue
			}
			seen[emp.Department] = true
			cals, err := s.calendarRepo.ListByDepartment(ctx, emp.Department)
			if err != nil {
				return nil, fmt.Errorf("list department calendars: %w", err)
			}
			snap.DeptCalendars[emp.Department] = cals
		}
	}

	holidays, err := s.timeOffRepo.ListHolidays(ctx, from, lookAhead)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	for i := range holidays {
		holidays[i].StartDate = localDate(holidays[i].StartDate, s.loc)
		holidays[i].EndDate = localDate(holidays[i].EndDate, s.loc)
	}
	snap.Holidays = holidays

	periods, err := s.timeOffRepo.ListApprovedPeriods(ctx, ids, from, lookAhead.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list time off periods: %w", err)
	}
	for _, p := range periods {
		snap.Periods[p.EmployeeID] = append(snap.Periods[p.EmployeeID], p)
	}

	lactations, err := s.timeOffRepo.ListLactationPeriods(ctx, ids, from, to)
	if err != nil {
		return nil, fmt.Errorf("list lactation periods: %w", err)
	}
	for _, p := range lactations {
		p.StartDate = localDate(p.StartDate, s.loc)
		p.EndDate = localDate(p.EndDate, s.loc)
		snap.Lactations[p.EmployeeID] = append(snap.Lactations[p.EmployeeID], p)
	}

	counterFrom := from.AddDate(0, 0, -(s.opts.GraceWindowDays - 1))
	counters, err := s.workEntryRepo.ListCounters(ctx, ids, counterFrom, to)
	if err != nil {
		return nil, fmt.Errorf("list inconsistency counters: %w", err)
	}
	for _, c := range counters {
		byDate := snap.Counters[c.EmployeeID]
		if byDate == nil {
			byDate = map[string]int{}
			snap.Counters[c.EmployeeID] = byDate
		}
		byDate[dateKey(localDate(c.Date, s.loc))] += c.Count
	}

	// include the day after the range so overnight shifts started on the
	// last day can still close
	events, err := s.punchRepo.ListForEmployees(ctx, ids, from.UTC(), lookAhead.AddDate(0, 0, 1).UTC())
	if err != nil {
		return nil, fmt.Errorf("list punch events: %w", err)
	}
	for _, ev := range events {
		snap.Punches[ev.EmployeeID] = append(snap.Punches[ev.EmployeeID], ev)
	}

	return snap, nil
}

type employeeResult struct {
	entries  []workentry.WorkEntry
	added    []workentry.Inconsistency
	dropped  []workentry.Inconsistency
	absences []reconciliation.AbsenceDay
}

// fanOut reconciles employees on a fixed worker pool. Workers share the
// read-only snapshot; all per-employee state stays inside one worker so
// day ordering guarantees hold.
func (s *ReconcileServiceImpl) fanOut(employees []employee.Employee, snap *Snapshot) []employeeResult {
	workers := s.opts.Workers
	if workers > len(employees) {
		workers = len(employees)
	}

	jobs := make(chan employee.Employee)
	out := make(chan employeeResult, len(employees))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for emp := range jobs {
				out <- reconcileEmployee(snap, emp)
			}
		}()
	}

	for _, emp := range employees {
		jobs <- emp
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]employeeResult, 0, len(employees))
	for r := range out {
		results = append(results, r)
	}
	return results
}

func sortEntries(entries []workentry.WorkEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].EmployeeID != entries[j].EmployeeID {
			return entries[i].EmployeeID < entries[j].EmployeeID
		}
		return entries[i].StartAt.Before(entries[j].StartAt)
	})
}

func sortInconsistencies(items []workentry.Inconsistency) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].EmployeeID != items[j].EmployeeID {
			return items[i].EmployeeID < items[j].EmployeeID
		}
		return items[i].Date.Before(items[j].Date)
	})
}

package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"berdoz/internal/client"
	"berdoz/internal/favm"
	"berdoz/internal/modules"
	"berdoz/internal/session"
)

var ErrUnknownModule = errors.New("unknown module")

// Config wires an App.
type Config struct {
	API       *client.HTTP
	Session   *session.Session
	Validator favm.Validator
	Logger    *slog.Logger
	In        io.Reader
	Out       io.Writer
}

// App is the terminal client. It is not safe for concurrent use.
type App struct {
	api     *client.HTTP
	session *session.Session
	logger  *slog.Logger
	in      *bufio.Reader
	out     io.Writer

	views   map[string]moduleView
	current moduleView
}

func NewApp(cfg Config) *App {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Session == nil {
		cfg.Session = session.New(nil)
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	opts := []favm.Option{favm.WithSession(cfg.Session), favm.WithLogger(cfg.Logger)}
	if cfg.Validator != nil {
		opts = append(opts, favm.WithValidator(cfg.Validator))
	}

	views := map[string]moduleView{
		modules.BuildingExpenses: bind(cfg.API, modules.BuildingExpense(), opts...),
		modules.DailyAccounts:    bind(cfg.API, modules.DailyAccount(), opts...),
		modules.Installments:     bind(cfg.API, modules.Installment(), opts...),
		modules.Payroll:          bind(cfg.API, modules.PayrollEntry(), opts...),
		modules.Supervision:      bind(cfg.API, modules.SupervisionEntry(), opts...),
		modules.Teachers:         bind(cfg.API, modules.Teacher(), opts...),
		modules.KitchenExpenses:  bind(cfg.API, modules.KitchenExpense(), opts...),
		modules.MonthlyExpenses:  bind(cfg.API, modules.MonthlyExpense(), opts...),
		modules.Calendar:         bind(cfg.API, modules.CalendarEntry(), opts...),
	}

	return &App{
		api:     cfg.API,
		session: cfg.Session,
		logger:  cfg.Logger.With("component", "console"),
		in:      bufio.NewReader(cfg.In),
		out:     cfg.Out,
		views:   views,
	}
}

// Use makes module the active one and loads it on first use.
func (a *App) Use(ctx context.Context, module string) error {
	v, ok := a.views[module]
	if !ok {
		return fmt.Errorf("%w %q (try: %s)", ErrUnknownModule, module, strings.Join(modules.Names, ", "))
	}
	a.current = v
	if v.Loaded() == 0 {
		return v.Load(ctx)
	}
	return nil
}

// Run reads commands until EOF, exit or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.session.LockAll()
	fmt.Fprintln(a.out, `berdoz console. Type "help" for commands.`)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(a.out, "berdoz %s> ", a.promptName())
		line, err := a.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		fields := strings.Fields(line)
		if len(fields) > 0 {
			quit, cmdErr := a.Exec(ctx, fields[0], fields[1:])
			if cmdErr != nil {
				fmt.Fprintln(a.out, "error:", cmdErr)
			}
			if quit {
				return nil
			}
		}
		if eof {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}

func (a *App) promptName() string {
	if a.current == nil {
		return "-"
	}
	name := a.current.Name()
	if a.session.Gated(name) && !a.session.Unlocked(name) {
		name += " (locked)"
	}
	return name
}

// Exec runs one command. quit reports whether the loop should stop.
func (a *App) Exec(ctx context.Context, cmd string, args []string) (quit bool, err error) {
	switch cmd {
	case "help", "?":
		a.help()
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true, nil
	case "modules":
		for _, name := range modules.Names {
			fmt.Fprintf(a.out, "  %s\n", name)
		}
	case "use":
		if len(args) != 1 {
			return false, errors.New("usage: use <module>")
		}
		return false, a.Use(ctx, args[0])
	case "find":
		return false, a.find(ctx, strings.Join(args, " "))
	case "upload":
		return false, a.upload(ctx, args)
	default:
		return false, a.execModule(ctx, cmd, args)
	}
	return false, nil
}

func (a *App) execModule(ctx context.Context, cmd string, args []string) error {
	v := a.current
	if v == nil {
		return errors.New(`no module selected, run "use <module>"`)
	}
	switch cmd {
	case "load":
		if err := v.Load(ctx); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d records loaded\n", v.Loaded())
	case "list", "ls":
		return v.Render(a.out)
	case "search":
		v.SetQuery(strings.Join(args, " "))
		return v.Render(a.out)
	case "year", "month":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <value|all>", cmd)
		}
		f := v.State().Table
		if cmd == "year" {
			f.Year = args[0]
		} else {
			f.Month = args[0]
		}
		v.SetTable(f)
		return v.Render(a.out)
	case "summary":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: summary <year|all> [month|all]")
		}
		f := favm.PeriodFilter{Year: args[0], Month: favm.AllMonths}
		if len(args) == 2 {
			f.Month = args[1]
		}
		v.SetSummary(f)
		return v.Render(a.out)
	case "reset":
		v.SetQuery("")
		v.SetTable(favm.AllPeriods)
		v.SetSummary(favm.AllPeriods)
		return v.Render(a.out)
	case "create":
		raw, err := promptBlock(a.in, a.out, "Record JSON")
		if err != nil {
			return err
		}
		if strings.TrimSpace(raw) == "" {
			return errors.New("empty record")
		}
		id, err := v.CreateJSON(ctx, []byte(raw))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "created %s\n", id)
	case "delete", "rm":
		if len(args) != 1 {
			return errors.New("usage: delete <id>")
		}
		if err := v.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted %s\n", args[0])
	case "unlock":
		return a.unlock(v.Name())
	case "lock":
		a.session.Lock(v.Name())
		fmt.Fprintf(a.out, "%s locked\n", v.Name())
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (a *App) unlock(module string) error {
	if !a.session.Gated(module) {
		fmt.Fprintf(a.out, "%s has no gate\n", module)
		return nil
	}
	user, err := prompt(a.in, a.out, "User")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.session.Unlock(module, user, password); err != nil {
		a.logger.Warn("Failed unlock attempt", "module", module, "user", user)
		return err
	}
	fmt.Fprintf(a.out, "%s unlocked\n", module)
	return nil
}

// find runs the server-wide search and prints hit counts per module.
func (a *App) find(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("usage: find <words>")
	}
	results, err := a.api.Search(ctx, query)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		hits := results[name]
		fmt.Fprintf(a.out, "%s: %d\n", name, len(hits))
		for _, raw := range hits {
			var head struct {
				ID string `json:"id"`
			}
			if json.Unmarshal(raw, &head) == nil {
				fmt.Fprintf(a.out, "  %s\n", head.ID)
			}
		}
	}
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: upload <path> [folder]")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	folder := ""
	if len(args) == 2 {
		folder = args[1]
	}
	att, err := a.api.Upload(ctx, folder, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded %s (%d bytes) -> %s\n", att.OriginalName, att.Size, att.URL)
	return nil
}

func (a *App) help() {
	fmt.Fprint(a.out, `Commands:
  modules               list modules
  use <module>          select and load a module
  load                  reload the selected module
  list                  show visible rows and totals
  search <words>        fuzzy filter the selected module
  year <y|all>          table year filter
  month <m|all>         table month filter
  summary <y|all> [m]   summary filter
  reset                 clear query and filters
  create                add a record from JSON
  delete <id>           delete a record
  unlock | lock         open or close the module gate
  find <words>          search all modules on the server
  upload <path> [dir]   upload an attachment
  exit                  leave
`)
}

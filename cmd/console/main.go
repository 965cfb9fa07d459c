// Command console is an interactive terminal client for the ledgerdesk API.
// It drives the same mechanisms the browser dashboard uses: a route decider
// on every navigation, a capability gate from the signed-in session, and a
// paginated collection client with debounced search and confirm-guarded
// mutations.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/config"
	"github.com/ledgerdesk/ledgerdesk/internal/console"
	"github.com/ledgerdesk/ledgerdesk/internal/console/collection"
	"github.com/ledgerdesk/ledgerdesk/internal/console/rest"
	"github.com/ledgerdesk/ledgerdesk/internal/console/routeguard"
	"github.com/ledgerdesk/ledgerdesk/internal/console/session"
	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if *password == "" {
		log.Fatal("a password is required (-password)")
	}

	if err := run(cfg, *email, *password); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, email, password string) error {
	backendURL := cfg.Console.BackendURL
	if backendURL == "" {
		backendURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	var apiOpts []rest.Option
	if cfg.Console.FetchTimeout != "" {
		d, err := time.ParseDuration(cfg.Console.FetchTimeout)
		if err != nil {
			return fmt.Errorf("parse console.fetch_timeout: %w", err)
		}
		apiOpts = append(apiOpts, rest.WithTimeout(d))
	}
	api := rest.NewClient(backendURL, apiOpts...)
	store := session.NewRestStore(api)
	ui := console.New(routeTable(&cfg.Console), store)

	ctx := context.Background()

	// Unauthenticated navigation to a protected screen bounces to login.
	decision, err := ui.Navigate(ctx, "/users", "")
	if err != nil {
		return err
	}
	if decision.Action == routeguard.RedirectToLogin {
		fmt.Printf("redirected to %s, signing in...\n", decision.Target)
	}

	sess, err := store.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	fmt.Printf("signed in as %s\n", sess.Name)

	gate, err := ui.Ability(ctx)
	if err != nil {
		return err
	}
	if gate.Cannot("user.view", "") {
		return fmt.Errorf("account %s may not view users", email)
	}

	debounce := collection.DefaultDebounce
	if cfg.Console.Debounce != "" {
		d, err := time.ParseDuration(cfg.Console.Debounce)
		if err != nil {
			return fmt.Errorf("parse console.debounce: %w", err)
		}
		debounce = d
	}

	users := collection.New(
		rest.PageFetcher[domain.User](api, "users", store.Token),
		collection.WithDebounce[domain.User](debounce),
		collection.WithOnChange(printUsers),
	)
	defer users.Close()

	actions := collection.NewWorkflow(
		users,
		rest.RowMutator(api, "users", store.Token, func(u domain.User) uint { return u.ID }),
		printNotifier{},
	)

	users.Refetch()

	return repl(ctx, users, actions)
}

// routeTable builds the navigation rules from config, falling back to the
// defaults for anything unset.
func routeTable(cfg *config.ConsoleConfig) routeguard.RouteTable {
	t := routeguard.DefaultRouteTable()
	if len(cfg.PublicRoutes) > 0 {
		t.PublicRoutes = cfg.PublicRoutes
	}
	if len(cfg.AuthRoutes) > 0 {
		t.AuthRoutes = cfg.AuthRoutes
	}
	if cfg.APIAuthPrefix != "" {
		t.APIAuthPrefix = cfg.APIAuthPrefix
	}
	if cfg.LoginPath != "" {
		t.LoginPath = cfg.LoginPath
	}
	if cfg.DefaultPath != "" {
		t.DefaultRedirect = cfg.DefaultPath
	}
	return t
}

func repl(ctx context.Context, users *collection.Client[domain.User], actions *collection.Workflow[domain.User]) error {
	fmt.Println("commands: list, search <term>, filter <name> <value>, clear, next, prev, page <n>, size <n>, status <id>, delete <id>, quit")

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "quit", "exit":
			return nil
		case "list":
			users.Refetch()
		case "search":
			users.SetSearch(strings.Join(args, " "))
		case "filter":
			if len(args) != 2 {
				fmt.Println("usage: filter <name> <value>")
				continue
			}
			users.SetFilter(args[0], args[1])
		case "clear":
			users.ClearFilters()
		case "next":
			users.NextPage()
		case "prev":
			users.PreviousPage()
		case "page":
			if n, ok := parseInt(args); ok {
				users.SetPageIndex(n - 1)
			}
		case "size":
			if n, ok := parseInt(args); ok {
				users.SetPageSize(n)
			}
		case "status", "delete":
			id, ok := parseInt(args)
			if !ok {
				continue
			}
			kind := collection.ActionChangeStatus
			if cmd == "delete" {
				kind = collection.ActionDelete
			}
			if err := mutate(ctx, sc, users, actions, uint(id), kind); err != nil {
				fmt.Println(err)
			}
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

// mutate runs the confirm-then-mutate workflow for one row.
func mutate(ctx context.Context, sc *bufio.Scanner, users *collection.Client[domain.User], actions *collection.Workflow[domain.User], id uint, kind collection.ActionKind) error {
	var row *domain.User
	for _, u := range users.Snapshot().Items {
		if u.ID == id {
			row = &u
			break
		}
	}
	if row == nil {
		return fmt.Errorf("no row with id %d on this page", id)
	}

	if err := actions.Request(*row, kind); err != nil {
		return err
	}

	fmt.Printf("%s user %d (%s)? [y/N] ", kind, id, row.Email)
	if !sc.Scan() || strings.ToLower(strings.TrimSpace(sc.Text())) != "y" {
		return actions.Cancel()
	}
	return actions.Confirm(ctx)
}

func parseInt(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Println("expected one numeric argument")
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Println("expected a positive number")
		return 0, false
	}
	return n, true
}

func printUsers(snap collection.Snapshot[domain.User]) {
	if snap.Loading {
		return
	}
	if snap.Err != nil {
		fmt.Printf("fetch failed: %v (showing previous page)\n", snap.Err)
		return
	}

	for _, u := range snap.Items {
		status := "inactive"
		if u.IsActive {
			status = "active"
		}
		fmt.Printf("%4d  %-24s %-32s %-8s kyc=%s\n", u.ID, u.Name, u.Email, status, u.KYCStatus)
	}
	if snap.HasMeta {
		fmt.Printf("page %d/%d, %d total\n", snap.Meta.Page, snap.Meta.PageCount, snap.Meta.Total)
	}
}

// printNotifier surfaces mutation outcomes as terminal toasts.
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println("ok:", msg) }
func (printNotifier) Error(msg string)   { fmt.Println("error:", msg) }

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/random"
	"github.com/officeportal/portal/web"
	"github.com/officeportal/portal/web/global"
	"github.com/officeportal/portal/web/service"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("Starting %v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	server := web.NewServer()
	global.SetWebServer(server)
	err = server.Start()
	if err != nil {
		log.Fatalf("Error starting web server: %v", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := config.LoadEnv(); err != nil {
				logger.Warning("reload .env err:", err)
			}
			server = web.NewServer()
			global.SetWebServer(server)
			if err := server.Start(); err != nil {
				log.Fatalf("Error restarting web server: %v", err)
				return
			}
			logger.Info("Web server restarted successfully.")
		default:
			logger.Info("Shutting down server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close database err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	initLogger()
	dbPath := config.GetDBPath()
	if file, err := os.Open(dbPath); err == nil {
		ok, err := database.IsSQLiteDB(file)
		file.Close()
		if err != nil || !ok {
			fmt.Println(dbPath, "is not a SQLite database")
			os.Exit(1)
		}
	}
	fmt.Println("Start migrating database", dbPath)
	if err := database.InitDB(dbPath); err != nil {
		fmt.Println("migrate failed:", err)
		os.Exit(1)
	}
	defer database.CloseDB()

	pending, err := database.PendingMigrations(database.GetDB())
	if err != nil {
		fmt.Println("check migrations failed:", err)
		os.Exit(1)
	}
	if len(pending) > 0 {
		fmt.Println("migrations still pending:", pending)
		os.Exit(1)
	}
	fmt.Println("Migration done!")
}

func showAdmin() {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	users, err := userService.GetUsers()
	if err != nil {
		fmt.Println("get users failed:", err)
		return
	}
	fmt.Println("bootstrap administrator:", config.GetBootstrapUsername())
	for _, user := range users {
		if user.IsAdmin() {
			fmt.Printf("admin: %s (%s)\n", user.Username, user.DisplayName())
		}
	}
	fmt.Println("port:", config.GetPort())
}

func resetAdmin(username string, password string) {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	if username == "" {
		username = config.GetBootstrapUsername()
	}
	generated := password == ""
	if generated {
		password = random.Password(12)
	}
	userService := service.UserService{}
	if err := userService.ResetUser(username, password); err != nil {
		fmt.Println("reset admin failed:", err)
		return
	}
	if generated {
		fmt.Printf("password of %s reset to: %s\n", username, password)
		return
	}
	fmt.Printf("password of %s reset\n", username)
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Println("load .env failed:", err)
	}

	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Office portal web server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show administrator accounts",
		Run: func(cmd *cobra.Command, args []string) {
			showAdmin()
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset an administrator password, creating the account if missing",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			resetAdmin(username, password)
		},
	}
	resetCmd.Flags().String("username", "", "administrator login (defaults to PORTAL_ADMIN_USERNAME)")
	resetCmd.Flags().String("password", "", "new password (generated when empty)")

	adminCmd.AddCommand(showCmd, resetCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

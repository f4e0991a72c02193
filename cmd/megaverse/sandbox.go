package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/megaverse/internal/adapters/http"
	"github.com/spf13/cobra"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Start a local megaverse API",
	Long: `Serves the polyanets, soloons and comeths endpoints from memory so maps can be
built without touching the real API. GET /api/map/{candidateId} shows what was placed.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		failEvery, _ := cmd.Flags().GetInt("fail-every")

		server := httpAdapter.NewServer(
			httpAdapter.WithFailEvery(failEvery),
			httpAdapter.WithLogger(loggerFromFlags(cmd)),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting megaverse sandbox on %s\n", srv.Addr)
			fmt.Printf("Use --base-url http://localhost:%s/api/ with megaverse run\n", port)
			if failEvery > 0 {
				fmt.Printf("Every %d requests fail with a 500\n", failEvery)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Sandbox stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
	sandboxCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	sandboxCmd.Flags().Int("fail-every", 0, "Fail every Nth entity request with a 500 (0 disables)")
}

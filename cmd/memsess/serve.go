package main

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/icza/memsession"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session demo application",
	Long: `Serve a login demo at /demo whose sessions are kept in the configured store,
and the store metrics at /metrics. Use 'a' as the password to log in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		maxAge, _ := cmd.Flags().GetDuration("max-age")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		store, err := newStore(cmd, memsession.NewMetrics(reg))
		if err != nil {
			return err
		}

		// For demo purposes, we want cookies to be sent over HTTP too (not just HTTPS):
		d := &demo{
			mgr: memsession.NewCookieManagerOptions(store, &memsession.CookieMngrOptions{
				AllowHTTP:    true,
				CookieMaxAge: maxAge,
				Logger:       logger,
			}),
			logger: logger,
		}

		r := chi.NewRouter()
		r.Get("/demo", d.handle)
		r.Post("/demo", d.handle)
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{Addr: addr, Handler: r}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("Session demo is about to start", "url", "http://localhost"+addr+"/demo")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().Duration("max-age", 30*time.Minute, "max age of session cookies")

	rootCmd.AddCommand(serveCmd)
}

var templ = template.Must(template.New("").Parse(page))

type demo struct {
	mgr    memsession.Manager
	logger *slog.Logger
}

// handle handles everything: page/form rendering, processing login form submits, logout submits.
// If login is successful, a new session is created. If logout is successful, session is removed.
func (d *demo) handle(w http.ResponseWriter, r *http.Request) {
	m := map[string]interface{}{}

	sess := d.mgr.Get(r)
	if sess != nil {
		// Already logged in
		if r.FormValue("Logout") != "" {
			if err := d.mgr.Remove(sess, w); err != nil { // Logout user
				d.logger.Error("Failed to remove session", "id", sess.ID, "err", err)
			}
			sess = nil
		} else {
			count, _ := sess.Attr("Count").(float64) // Numbers come back as float64
			sess.SetAttr("Count", count+1)
			if err := d.mgr.Add(sess, w); err != nil {
				d.logger.Error("Failed to save session", "id", sess.ID, "err", err)
			}
		}
	} else {
		// Not logged in
		if r.FormValue("Login") != "" {
			if userName := r.FormValue("UserName"); userName != "" && r.FormValue("Password") == "a" {
				// Successful login. New session with initial attributes:
				sess = memsession.NewSessionOptions(&memsession.SessOptions{
					Attrs: map[string]interface{}{"UserName": userName, "Count": float64(1)},
				})
				if err := d.mgr.Add(sess, w); err != nil {
					d.logger.Error("Failed to add session", "err", err)
				}
			} else {
				m["InvalidLogin"] = true
			}
		}
	}

	if sess != nil {
		m["UserName"] = sess.Attr("UserName")
		m["Count"] = sess.Attr("Count")
	}

	if err := templ.Execute(w, m); err != nil {
		d.logger.Error("Failed to render page", "err", err)
	}
}

const page = `<html><body>
{{if .InvalidLogin}}<p style="color:red">Invalid user name or password!</p>{{end}}

{{if .UserName}}
	<p>Hello <b>{{.UserName}}</b>! Since login you visited <b>{{.Count}}</b> times! <a href="/demo">Refresh!</a></p>
{{end}}

<form method="post" action="/demo">
	{{if .UserName}}
		<input type="submit" name="Logout" value="Logout">
	{{else}}
		<label for="UserNameId" style="width:100px; display: inline-block">User name:</label>
		<input type="text" name="UserName" id="UserNameId"><br>
		<label for="PasswordId" style="width:100px; display: inline-block">Password:</label>
		<input type="password" name="Password" id="PasswordId">
		<span style="font-style:italic; font-size: 90%">Tip: use 'a' to login ;)</span><br>
		<input type="submit" name="Login" value="Login">
	{{end}}
</form>
</body></html>`

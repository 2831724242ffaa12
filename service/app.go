package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/app/config"
	"inkwell/app/notify"
	"inkwell/app/repositories"
	"inkwell/app/routes"

	log "github.com/sirupsen/logrus"
)

// RunAppServer starts the blog API server and blocks until it is signalled
// to stop.
func RunAppServer() {
	conf := loadConfig()

	db, err := repositories.Open(conf.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	router := routes.SetupRoutes(db, conf, newNotifier(conf))
	server := &http.Server{
		Addr:         conf.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("addr", conf.Addr).Info("starting blog API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

// newNotifier picks real SMTP delivery when a relay is configured, and the
// logging fallback otherwise.
func newNotifier(conf *config.Config) notify.Notifier {
	if conf.SMTP.Host == "" {
		return &notify.LogNotifier{}
	}
	return notify.NewSMTPNotifier(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.User, conf.SMTP.Pass, conf.SMTP.From)
}

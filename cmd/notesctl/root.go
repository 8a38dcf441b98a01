package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotes/internal/client/api"
	"gonotes/internal/client/cache"
	"gonotes/internal/client/session"
	"gonotes/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvAPIURL = "NOTESCTL_API_URL"
	EnvToken  = "NOTESCTL_TOKEN"
)

const (
	defaultAPIURL  = "http://localhost:8080/api"
	defaultTimeout = 30 * time.Second
	stateDirName   = "notesctl"
	stateFileName  = "session.yaml"

	msgSessionLoaded = "session loaded"
)

// Ошибки клиента.
var (
	ErrNotLoggedIn   = errors.New("not logged in, run `notesctl login` first")
	ErrInvalidOutput = errors.New("output format must be text or yaml")
	ErrInvalidNoteID = errors.New("note id must be a positive integer")
)

// cli - общее состояние команд одного запуска.
type cli struct {
	apiURL    string
	stateFile string
	output    string
	timeout   time.Duration
	verbose   bool

	httpClient *http.Client

	// ephemeral - токен пришел из окружения и не сохраняется на диск.
	ephemeral bool

	sess   *session.AuthContext
	client *api.Client
	notes  *cache.Cache
}

func newCLI() *cli {
	return &cli{}
}

func (c *cli) command() *cobra.Command {
	root := &cobra.Command{
		Use:               "notesctl",
		Short:             "Command line client for the notes API",
		Long:              "notesctl keeps a session token on disk and manages the caller's notes through the HTTP API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.apiURL, "api-url", envOr(EnvAPIURL, defaultAPIURL), "base URL of the notes API")
	flags.StringVar(&c.stateFile, "session-file", defaultStateFile(), "file with the saved session")
	flags.StringVarP(&c.output, "output", "o", outputText, "output format: text or yaml")
	flags.DurationVar(&c.timeout, "timeout", defaultTimeout, "timeout of a single command")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.listCmd(),
		c.showCmd(),
		c.createCmd(),
		c.editCmd(),
		c.deleteCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(logger.Development, level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetGlobalLogger(log)

	if c.output != outputText && c.output != outputYAML {
		return ErrInvalidOutput
	}

	st, err := loadState(c.stateFile)
	if err != nil {
		return err
	}

	c.sess = session.New(st.Token)
	if st.User != nil {
		c.sess.SetUser(*st.User)
	}
	if token := os.Getenv(EnvToken); token != "" && token != st.Token {
		c.sess.SetToken(token)
		c.ephemeral = true
	}

	var opts []api.Option
	if c.httpClient != nil {
		opts = append(opts, api.WithHTTPClient(c.httpClient))
	}
	c.client = api.New(c.apiURL, c.sess, opts...)
	c.notes = cache.New(c.client, cache.WithSession(c.sess))

	logger.Log(cmd.Context()).Debug(cmd.Context(), msgSessionLoaded,
		zap.String("api_url", c.apiURL), zap.Bool("authenticated", c.sess.Authenticated()))
	return nil
}

// context ограничивает команду таймаутом.
func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := logger.NewRequestIDContext(cmd.Context(), "")
	return context.WithTimeout(ctx, c.timeout)
}

// owner возвращает ключ раздела кэша текущего пользователя, при необходимости спрашивая сервер.
func (c *cli) owner(ctx context.Context) (string, error) {
	if !c.sess.Authenticated() {
		return "", ErrNotLoggedIn
	}
	if key, ok := c.sess.OwnerKey(); ok {
		return key, nil
	}
	if _, err := c.client.Me(ctx); err != nil {
		return "", err
	}
	key, _ := c.sess.OwnerKey()
	return key, nil
}

// persist записывает сессию на диск или удаляет файл, если сессии больше нет.
func (c *cli) persist() error {
	if c.sess == nil || c.ephemeral {
		return nil
	}
	if !c.sess.Authenticated() {
		return removeState(c.stateFile)
	}
	st := state{Token: c.sess.Token()}
	if user, ok := c.sess.User(); ok {
		st.User = &user
	}
	return saveState(c.stateFile, st)
}

// execute выполняет команду и сохраняет итоговую сессию, даже если команда завершилась ошибкой.
func execute(ctx context.Context, c *cli, args []string, stdout, stderr io.Writer) error {
	cmd := c.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if persistErr := c.persist(); persistErr != nil {
		err = errors.Join(err, persistErr)
	}
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return stateFileName
	}
	return filepath.Join(dir, stateDirName, stateFileName)
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type App struct {
	baseURL string
	client  *http.Client
	in      *bufio.Reader
	out     io.Writer
}

func NewApp(baseURL string) *App {
	return &App{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run dispatches the requested command. Unknown commands print usage and
// return an error so main can exit non-zero.
func (a *App) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	default:
		fmt.Fprintln(a.out, "usage: cli [-a server-url] register|login")
		return fmt.Errorf("unknown command: %q", command)
	}
}

func (a *App) postJSON(ctx context.Context, path string, payload any) (int, map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, out, nil
}

func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.in, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	status, body, err := a.postJSON(ctx, "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": string(password),
	})
	if err != nil {
		return err
	}

	if status != http.StatusCreated {
		return fmt.Errorf("registration failed (%d): %v", status, body["message"])
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	status, body, err := a.postJSON(ctx, "/api/users/login", map[string]string{
		"email":    email,
		"password": string(password),
	})
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return fmt.Errorf("login failed (%d): %v", status, body["message"])
	}

	fmt.Fprintf(a.out, "Token: %v\n", body["token"])
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/parley/internal/config"
	"github.com/wesleyorama2/parley/internal/http"
	"github.com/wesleyorama2/parley/internal/output"
)

// addRequestFlags attaches the flag set shared by the verb commands.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "Header to include as 'Key: Value' (repeatable)")
	cmd.Flags().DurationP("timeout", "t", 0, "Exchange timeout (0 uses the process default)")
	cmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().StringP("data", "d", "", "Request body, sent verbatim")
	cmd.Flags().String("unix", "", "Unix socket path to connect to (argument becomes the request path)")
	cmd.Flags().String("profile", "", "Named profile from the config file")
	cmd.Flags().String("config", "parley.yaml", "Profile config file")
	cmd.Flags().String("extract", "", "Print only this gjson path of the response body")
	cmd.Flags().BoolP("verbose", "v", false, "Show request and response headers")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
}

// runRequest executes one verb command against the target described by
// the flags and the positional argument.
func runRequest(cmd *cobra.Command, method, arg string) error {
	headers, _ := cmd.Flags().GetStringArray("header")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	insecure, _ := cmd.Flags().GetBool("insecure")
	data, _ := cmd.Flags().GetString("data")
	unixPath, _ := cmd.Flags().GetString("unix")
	profileName, _ := cmd.Flags().GetString("profile")
	configPath, _ := cmd.Flags().GetString("config")
	extract, _ := cmd.Flags().GetString("extract")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	if !noColor && !output.IsTerminal() {
		noColor = true
	}

	req, target, path, err := buildRequest(arg, unixPath, profileName, configPath)
	if err != nil {
		return err
	}

	shown := make([][2]string, 0, len(headers))
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("malformed header %q, want 'Key: Value'", header)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		req.SetHeader(key, value)
		shown = append(shown, [2]string{key, value})
	}
	if timeout > 0 {
		req.WithTimeout(timeout)
	}
	if insecure {
		req.Secure(false)
	}
	if data != "" {
		req.Send(data)
	}

	switch method {
	case "GET":
		req.Get(path)
	case "PUT":
		req.Put(path)
	case "POST":
		req.Post(path)
	case "DELETE":
		req.Delete(path)
	}

	formatter := output.NewFormatter(verbose, noColor)
	if verbose {
		fmt.Print(formatter.FormatRequest(method, target, path, shown, data))
	}

	resp, err := req.End(context.Background())
	if err != nil {
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		return err
	}

	if extract != "" {
		fmt.Println(resp.JSONPassive().Get(extract).String())
		return nil
	}
	fmt.Print(formatter.FormatResponse(resp))
	return nil
}

// buildRequest resolves the target: a named profile, a Unix socket, or a
// full URL whose path segment becomes the request path.
func buildRequest(arg, unixPath, profileName, configPath string) (req *http.Request, target, path string, err error) {
	switch {
	case profileName != "":
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, "", "", err
		}
		req, err := cfg.Request(profileName)
		if err != nil {
			return nil, "", "", err
		}
		return req, profileName, ensurePath(arg), nil

	case unixPath != "":
		req := http.NewRequest().UnixSocket(unixPath)
		return req, "unix://" + unixPath, ensurePath(arg), nil

	default:
		target, path := splitURL(arg)
		req := http.NewRequest().Tcp(target)
		if req.Err() != nil {
			return nil, "", "", req.Err()
		}
		return req, target, path, nil
	}
}

// splitURL splits a full URL into the connection target
// (scheme://host[:port]) and the request path.
func splitURL(fullURL string) (string, string) {
	if !strings.Contains(fullURL, "://") {
		fullURL = "http://" + fullURL
	}
	sep := strings.Index(fullURL, "://")
	rest := fullURL[sep+3:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return fullURL[:sep+3] + rest[:i], rest[i:]
	}
	return fullURL, "/"
}

func ensurePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

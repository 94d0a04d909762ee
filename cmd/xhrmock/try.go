package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tarmac-project/xhrmock"
	"github.com/tarmac-project/xhrmock/xhr"
)

var errHeaderFlag = errors.New("header must be formatted as name:value")

type tryOptions struct {
	method  string
	url     string
	body    string
	headers []string
	timeout time.Duration
}

func newTryCmd(verbose *bool) *cobra.Command {
	var opts tryOptions

	cmd := &cobra.Command{
		Use:   "try <file>",
		Short: "Send one request through a mock loaded from a fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFixture(args[0])
			if err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), *verbose)
			m := xhrmock.New(xhrmock.Config{Logger: &log}).Setup()
			defer m.Teardown()

			if err := f.Register(m); err != nil {
				return err
			}
			return replay(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	addRequestFlags(cmd.Flags(), &opts)
	return cmd
}

func addRequestFlags(fs *pflag.FlagSet, opts *tryOptions) {
	fs.StringVarP(&opts.method, "method", "X", "GET", "request method")
	fs.StringVar(&opts.url, "url", "/", "request url")
	fs.StringVarP(&opts.body, "body", "d", "", "request body")
	fs.StringArrayVarP(&opts.headers, "header", "H", nil, "request header as name:value (repeatable)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "request timeout (0 disables)")
}

// replay sends one request through the installed transport and prints the result.
func replay(ctx context.Context, w io.Writer, opts tryOptions) error {
	r, err := xhr.New(xhr.Config{})
	if err != nil {
		return err
	}
	if err := r.Open(opts.method, opts.url); err != nil {
		return err
	}
	for _, h := range opts.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("%w: %q", errHeaderFlag, h)
		}
		if err := r.SetRequestHeader(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	r.SetTimeout(opts.timeout)

	var body io.Reader
	if opts.body != "" {
		body = strings.NewReader(opts.body)
	}
	if err := r.Send(body); err != nil {
		return err
	}

	if err := r.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			r.Abort()
		}
		return fmt.Errorf("request failed: %w", err)
	}

	fmt.Fprintf(w, "%d %s\n", r.Status(), r.StatusText())
	fmt.Fprint(w, r.GetAllResponseHeaders())
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.ResponseText())
	return nil
}

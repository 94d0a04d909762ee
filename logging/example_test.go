package logging_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tarmac-project/xhrmock"
	"github.com/tarmac-project/xhrmock/logging"
	"github.com/tarmac-project/xhrmock/xhr"
)

// Dispatch logs of a Mock are shipped to the host logging capability.
func ExampleNewWriter() {
	client, _ := logging.New(logging.Config{
		// Inside a Tarmac function this is wapc.HostCall, the default.
		HostCall: func(namespace, capability, function string, payload []byte) ([]byte, error) {
			fmt.Println(namespace, capability, function, strings.Contains(string(payload), `"url":"/missing"`))
			return nil, nil
		},
	})

	log := zerolog.New(logging.NewWriter(client)).Level(zerolog.WarnLevel)
	m := xhrmock.New(xhrmock.Config{Logger: &log})

	r, _ := xhr.New(xhr.Config{Transport: m})
	_ = r.Open("GET", "/missing")
	_ = r.Send(nil)
	_ = r.Wait(context.Background())
	// Output:
	// tarmac logging Warn true
}

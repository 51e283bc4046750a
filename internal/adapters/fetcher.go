package adapters

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ports"
)

// FetcherAdapter materializes a manifest source into bytes: a bare
// local path is read from disk, anything else is fetched over HTTP(S).
// Every failure is wrapped with an errbuilder code at the point it
// occurs, the same load-then-wrap-error idiom used throughout the
// adapters package.
type FetcherAdapter struct {
	Client *http.Client
}

// NewFetcherAdapter returns a FetcherAdapter using http.DefaultClient.
func NewFetcherAdapter() FetcherAdapter {
	return FetcherAdapter{Client: http.DefaultClient}
}

func (a FetcherAdapter) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("source file not found").
				WithCause(err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to build fetch request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch source").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("fetch returned non-200 status: " + resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read fetch response body").
			WithCause(err)
	}
	return data, nil
}

var _ ports.Fetcher = FetcherAdapter{}

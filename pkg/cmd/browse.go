package cmd

import (
	"bufio"
	"context"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/query"
)

var (
	BrowseCmd = &cobra.Command{
		Use:   BrowseCmdName,
		Short: BrowseCmdShort,
		Long:  BrowseCmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return runBrowse(cmd.Context(), a.browser, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
)

// parseLine turns one input line into a search. Lines containing "=" are
// query parameters, anything else is free text.
func parseLine(line string, defaultSize int) (dal.FilterSpec, int, int) {
	vars := url.Values{}
	if strings.Contains(line, "=") {
		if parsed, err := url.ParseQuery(line); err == nil {
			vars = parsed
		}
	} else {
		vars.Set("search", line)
	}
	page, size := query.ParsePage(vars, defaultSize)
	return query.ParseFilter(vars), page, size
}

func runBrowse(ctx context.Context, b *browse.Browser, in io.Reader, out io.Writer) error {
	session := b.NewSession()
	defer session.Close()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		spec, page, size := parseLine(line, b.PageSize())
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, ok := session.Search(ctx, spec, page, size)
			if !ok {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			_ = printListing(out, res)
		}()
	}
	wg.Wait()
	return scanner.Err()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	md2conf "github.com/alnah/go-md2conf"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input file specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrNoTitle      = errors.New("no title given and none found in the document")
)

var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// run executes one publish. The dry-run path converts and prints without
// touching the network, so it needs no configuration.
func run(ctx context.Context, flags *cliFlags, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: md2conf [flags] <file.md>", ErrNoInput)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	markdown := string(data)

	if flags.dryRun {
		res, err := md2conf.NewConverter().Convert(ctx, md2conf.Input{Markdown: markdown})
		if err != nil {
			return err
		}
		fmt.Println(res.Body)
		if len(res.Diagrams) > 0 {
			fmt.Fprintf(os.Stderr, "%d diagram(s) would be rendered\n", len(res.Diagrams))
		}
		return nil
	}

	cfg := &Config{}
	if flags.config != "" {
		cfg, err = LoadConfig(flags.config)
		if err != nil {
			return err
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.validate(); err != nil {
		return err
	}

	spaceKey := flags.space
	if spaceKey == "" {
		spaceKey = cfg.SpaceKey
	}
	parentID := flags.parent
	if parentID == "" {
		parentID = cfg.ParentID
	}

	title := flags.title
	if title == "" && flags.pageID == "" {
		if title = firstHeading(markdown); title == "" {
			return ErrNoTitle
		}
	}

	log := zerolog.Nop()
	if flags.verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	store := md2conf.NewConfluenceStore(cfg.BaseURL, cfg.Email, cfg.APIToken)
	pub := md2conf.NewPublisher(store, md2conf.WithLogger(log))
	defer pub.Close()

	res, err := pub.Publish(ctx, md2conf.PublishInput{
		Markdown: markdown,
		PageID:   flags.pageID,
		SpaceKey: spaceKey,
		Title:    title,
		ParentID: parentID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Published page %s", res.PageID)
	if res.Diagrams > 0 {
		fmt.Printf(" (%d diagram(s)", res.Diagrams)
		if res.Fallbacks > 0 {
			fmt.Printf(", %d kept as code blocks", res.Fallbacks)
		}
		fmt.Print(")")
	}
	fmt.Println()
	fmt.Println(pageURL(cfg.BaseURL, res.PageID))
	return nil
}

// firstHeading returns the text of the first level-1 heading, or "".
func firstHeading(markdown string) string {
	m := firstHeadingPattern.FindStringSubmatch(markdown)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// pageURL builds a browsable URL for a page id.
func pageURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/pages/viewpage.action?pageId=" + id
}

package attach

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/panjf2000/ants/v2"
)

const (
	// files larger than this are skipped instead of inlined
	maxFileSize = 256 * 1024

	readPoolSize = 8
)

// Attachment is one local file inlined into the conversation context.
type Attachment struct {
	Path    string
	MIME    string
	Content string
}

// Collect expands the glob patterns against the local working tree and reads
// every text-like match. Binary files and oversized files are skipped
// silently; a pattern matching nothing is an error so typos surface early.
func Collect(patterns []string) ([]Attachment, error) {
	var paths []string
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad attach pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("attach pattern %q matched nothing", pattern)
		}
		for _, m := range matches {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				paths = append(paths, m)
			}
		}
	}

	pool, err := ants.NewPool(readPoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create read pool: %w", err)
	}
	defer pool.Release()

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		attachments []Attachment
	)

	for _, path := range paths {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			att, ok := readTextFile(path)
			if !ok {
				return
			}
			mu.Lock()
			attachments = append(attachments, att)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()

	sort.Slice(attachments, func(i, j int) bool {
		return attachments[i].Path < attachments[j].Path
	})

	return attachments, nil
}

func readTextFile(path string) (Attachment, bool) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxFileSize {
		return Attachment{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, false
	}

	mtype := mimetype.Detect(data)
	if !isTextLike(mtype) {
		return Attachment{}, false
	}

	return Attachment{
		Path:    path,
		MIME:    mtype.String(),
		Content: string(data),
	}, true
}

func isTextLike(mtype *mimetype.MIME) bool {
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return true
		}
	}
	return false
}

// Render formats attachments as fenced blocks appended to a user message.
func Render(message string, attachments []Attachment) string {
	if len(attachments) == 0 {
		return message
	}

	var sb strings.Builder
	sb.WriteString(message)
	for _, att := range attachments {
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "File: %s (%s)\n", att.Path, att.MIME)
		sb.WriteString("```\n")
		sb.WriteString(att.Content)
		if !strings.HasSuffix(att.Content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```")
	}

	return sb.String()
}

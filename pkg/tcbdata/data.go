// Package tcbdata defines the callback data carried by inline keyboard buttons.
//
// Data is "<type> <arg>...", separated by single spaces, and must fit Telegram's 64 byte limit.
// Anything bigger (a search result page) is stored in the cache and referenced by id.
package tcbdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asterix-bot/storage-bot/pkg/consts/tglimit"
)

const (
	TypeJoined = "joined" // joined [token]
	TypeMenu   = "menu"   // menu <name>
	TypeFile   = "file"   // file <message id>
	TypePage   = "page"   // page <cache id> <page>
)

const (
	MenuStart     = "start"
	MenuMovies    = "movies"
	MenuWebseries = "webseries"
	MenuHelp      = "help"
)

const MaxLen = tglimit.MaxCallbackDataLen

var ErrMalformed = errors.New("malformed callback data")

type PageItem struct {
	MessageID int
	Label     string
}

// SearchPage is the cached state behind a paged result keyboard.
type SearchPage struct {
	Title string
	Items []PageItem
}

func (p SearchPage) Pages(size int) int {
	if size <= 0 || len(p.Items) == 0 {
		return 0
	}
	return (len(p.Items) + size - 1) / size
}

// Page returns the items shown on page n (zero based), clamping n into range.
func (p SearchPage) Page(n, size int) (items []PageItem, page int) {
	pages := p.Pages(size)
	if pages == 0 {
		return nil, 0
	}
	page = min(max(n, 0), pages-1)
	start := page * size
	end := min(start+size, len(p.Items))
	return p.Items[start:end], page
}

func Build(typ string, args ...any) []byte {
	var b strings.Builder
	b.WriteString(typ)
	for _, arg := range args {
		fmt.Fprintf(&b, " %v", arg)
	}
	return []byte(b.String())
}

// Parse splits callback data into its type and arguments.
func Parse(data []byte) (typ string, args []string, err error) {
	if len(data) == 0 || len(data) > MaxLen {
		return "", nil, ErrMalformed
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", nil, ErrMalformed
	}
	return fields[0], fields[1:], nil
}

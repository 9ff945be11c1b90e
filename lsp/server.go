// Package lsp serves catalog diagnostics over the Language Server Protocol.
package lsp

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/icumsg/catalog"
	"github.com/dhamidi/icumsg/icu"
)

const lsName = "icumsg"

var log = commonlog.GetLogger("icumsg.lsp")

type Server struct {
	parser  *icu.Parser
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

func NewServer(p *icu.Parser, version string) *Server {
	ls := &Server{
		parser:    p,
		version:   version,
		documents: make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	if params.ClientInfo != nil {
		log.Infof("initializing for %s", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	text := ""
	if params.Text != nil {
		text = *params.Text
	} else {
		ls.mu.Lock()
		stored, ok := ls.documents[params.TextDocument.URI]
		ls.mu.Unlock()
		if !ok {
			return nil
		}
		text = stored
	}
	ls.update(ctx, params.TextDocument.URI, text)
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.documents[uri] = text
	ls.mu.Unlock()

	diagnostics := ls.diagnose(uri, text)
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnose checks the catalog held in text. Documents that are not catalogs
// get no diagnostics.
func (ls *Server) diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	path, err := uriToPath(uri)
	if err != nil || !catalog.Supported(path) {
		return diagnostics
	}

	c, err := catalog.Decode(path, []byte(text))
	if err != nil {
		line := 0
		var le *catalog.LoadError
		if errors.As(err, &le) {
			line = le.Line
			err = le.Err
		}
		return append(diagnostics, newDiagnostic(text, line, 1, err.Error()))
	}

	found, err := catalog.Check(context.Background(), ls.parser, []*catalog.Catalog{c}, 0)
	if err != nil {
		log.Errorf("check %s: %v", path, err)
		return diagnostics
	}
	for _, d := range found {
		diagnostics = append(diagnostics, newDiagnostic(text, d.Line, d.Col, d.Key+": "+d.Message))
	}
	return diagnostics
}

// newDiagnostic builds an error covering the character at the 1-based line
// and rune column. Unknown positions map to the start of the document.
func newDiagnostic(text string, line, col int, message string) protocol.Diagnostic {
	start := protocol.Position{}
	if line > 0 {
		start.Line = protocol.UInteger(line - 1)
		start.Character = protocol.UInteger(utf16Column(text, line, col))
	}
	end := start
	end.Character++

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// utf16Column converts a 1-based rune column into the 0-based UTF-16 offset
// used by LSP positions.
func utf16Column(text string, line, col int) int {
	lines := strings.Split(text, "\n")
	if line <= 0 || line > len(lines) {
		return 0
	}

	units, i := 0, 1
	for _, r := range lines[line-1] {
		if i >= col {
			break
		}
		units += utf16.RuneLen(r)
		i++
	}
	return units
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

package langsvr

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "ely"

var log = commonlog.GetLogger("ely.langsvr")

// Document is the last known content of an open file.
type Document struct {
	URI     protocol.DocumentUri
	Version protocol.Integer
	Text    string
}

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*Document
}

func New(version string) *Server {
	ls := &Server{
		version:   version,
		documents: make(map[protocol.DocumentUri]*Document),
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

// Document returns the stored document for uri, or nil.
func (ls *Server) Document(uri protocol.DocumentUri) *Document {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.documents[uri]
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

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
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
	doc := ls.update(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Warningf("%s: ignoring incremental change", params.TextDocument.URI)
		return nil
	}
	doc := ls.update(params.TextDocument.URI, params.TextDocument.Version, textChange.Text)
	ls.publish(ctx, doc)
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
	if params.Text == nil {
		return nil
	}
	version := protocol.Integer(0)
	if doc := ls.Document(params.TextDocument.URI); doc != nil {
		version = doc.Version
	}
	doc := ls.update(params.TextDocument.URI, version, *params.Text)
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) update(uri protocol.DocumentUri, version protocol.Integer, text string) *Document {
	doc := &Document{URI: uri, Version: version, Text: text}
	ls.mu.Lock()
	ls.documents[uri] = doc
	ls.mu.Unlock()
	return doc
}

func (ls *Server) publish(ctx *glsp.Context, doc *Document) {
	diagnostics := Diagnostics(doc.Text)
	log.Debugf("%s: %d diagnostics", displayName(doc.URI), len(diagnostics))

	version := protocol.UInteger(doc.Version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

// displayName shortens file URIs for log output.
func displayName(uri protocol.DocumentUri) string {
	s := string(uri)
	if strings.HasPrefix(s, "file://") {
		if parsed, err := url.Parse(s); err == nil {
			return filepath.Base(parsed.Path)
		}
	}
	return s
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

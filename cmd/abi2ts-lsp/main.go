// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"abi2ts/internal/config"
	"abi2ts/internal/emitter"
	"abi2ts/internal/lsp"
)

const lsName = "abi2ts"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file supplying emitter options")
	verbosity := flag.Int("verbosity", 1, "log verbosity")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("abi2ts.lsp")

	opts := emitter.DefaultOptions()
	if cfg, err := config.LoadOptional(*configPath); err != nil {
		log.Warningf("ignoring config: %s", err)
	} else if opts, err = cfg.EmitterOptions(); err != nil {
		log.Warningf("ignoring config: %s", err)
		opts = emitter.DefaultOptions()
	}

	abiHandler := lsp.NewHandler(opts)

	handler = protocol.Handler{
		Initialize:                     abiHandler.Initialize,
		Initialized:                    abiHandler.Initialized,
		Shutdown:                       abiHandler.Shutdown,
		SetTrace:                       abiHandler.SetTrace,
		TextDocumentDidOpen:            abiHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           abiHandler.TextDocumentDidClose,
		TextDocumentDidChange:          abiHandler.TextDocumentDidChange,
		TextDocumentHover:              abiHandler.TextDocumentHover,
		TextDocumentSemanticTokensFull: abiHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Noticef("starting %s language server %s", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}

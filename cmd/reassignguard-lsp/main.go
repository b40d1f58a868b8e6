// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command reassignguard-lsp serves reassignguard diagnostics and quick fixes to editors
// over the Language Server Protocol on standard input and output.
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"fillmore-labs.com/reassignguard/internal/lsp"
)

const lsName = "reassignguard"

var version = "devel"

func main() {
	verbose := flag.Int("v", 0, "log verbosity")
	logfile := flag.String("logfile", "", "log to `file` instead of standard error")

	flag.Parse()

	var path *string
	if *logfile != "" {
		path = logfile
	}

	commonlog.Configure(*verbose, path)

	h := lsp.NewHandler(version)

	s := server.NewServer(h.Protocol(), lsName, *verbose > 1)

	if err := s.RunStdio(); err != nil {
		commonlog.GetLogger(lsName).Errorf("server failed: %v", err)
		os.Exit(1)
	}
}

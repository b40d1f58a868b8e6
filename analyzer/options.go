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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/reassignguard/internal/config"
	"fillmore-labs.com/reassignguard/internal/run"
)

// Option configures specific behavior of a [New] reassignguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithOutArgs is an [Option] to configure whether variables passed by address (&x) to calls are reported.
func WithOutArgs(outArgs bool) Option { return outArgsOption{outArgs: outArgs} }

type outArgsOption struct{ outArgs bool }

func (o outArgsOption) apply(r *run.Options) {
	r.Behavior.Set(config.OutArguments, o.outArgs)
}

func (o outArgsOption) LogAttr() slog.Attr {
	return slog.Bool("outargs", o.outArgs)
}

// WithParams is an [Option] to configure whether function parameters are presumed not reassignable.
func WithParams(params bool) Option { return paramsOption{params: params} }

type paramsOption struct{ params bool }

func (o paramsOption) apply(r *run.Options) {
	r.Behavior.Set(config.Parameters, o.params)
}

func (o paramsOption) LogAttr() slog.Attr {
	return slog.Bool("params", o.params)
}

// WithReassign is an [Option] to configure whether disallowed reassignments are reported.
func WithReassign(reassign bool) Option { return reassignOption{reassign: reassign} }

type reassignOption struct{ reassign bool }

func (o reassignOption) apply(r *run.Options) {
	r.Analyzers.Set(config.ReassignAnalyzer, o.reassign)
}

func (o reassignOption) LogAttr() slog.Attr {
	return slog.Bool("reassign", o.reassign)
}

// WithUnused is an [Option] to configure whether unnecessary permissions are reported.
func WithUnused(unused bool) Option { return unusedOption{unused: unused} }

type unusedOption struct{ unused bool }

func (o unusedOption) apply(r *run.Options) {
	r.Analyzers.Set(config.UnusedAnalyzer, o.unused)
}

func (o unusedOption) LogAttr() slog.Attr {
	return slog.Bool("unused", o.unused)
}

// WithMaxTries is an [Option] to limit the candidates probed for a new variable name.
func WithMaxTries(maxTries int) Option { return maxTriesOption{maxTries: maxTries} }

type maxTriesOption struct{ maxTries int }

func (o maxTriesOption) apply(r *run.Options) {
	r.MaxTries = o.maxTries
}

func (o maxTriesOption) LogAttr() slog.Attr {
	return slog.Int("max-tries", o.maxTries)
}

// WithReadFile is an [Option] to read source files through readFile instead of
// the ReadFile function of the analysis pass, for example to see unsaved editor buffers.
//
// The content is used to keep indentation of suggested fixes.
func WithReadFile(readFile func(filename string) ([]byte, error)) Option {
	return readFileOption{readFile: readFile}
}

type readFileOption struct {
	readFile func(filename string) ([]byte, error)
}

func (o readFileOption) apply(r *run.Options) {
	r.ReadFile = o.readFile
}

func (o readFileOption) LogAttr() slog.Attr {
	return slog.Bool("readfile", o.readFile != nil)
}

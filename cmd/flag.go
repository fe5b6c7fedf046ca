// netpolicy-demo
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag is a cli flag whose value is read through viper.
// If Env is set, the environment variable is used when the flag is not given.
type Flag struct {
	Config string
	Cli    string
	Env    string
}

type StringFlag struct {
	f *Flag
}

type IntFlag struct {
	f *Flag
}

type DurationFlag struct {
	f *Flag
}

func (f *StringFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.PersistentFlags().String(f.f.Cli, value, f.f.usage(usage))
	f.f.bind(cmd.PersistentFlags().Lookup(f.f.Cli))
}

func (f *Flag) String() *StringFlag {
	return &StringFlag{
		f: f,
	}
}

func (f *IntFlag) Bind(cmd *cobra.Command, value int, usage string) {
	cmd.PersistentFlags().Int(f.f.Cli, value, f.f.usage(usage))
	f.f.bind(cmd.PersistentFlags().Lookup(f.f.Cli))
}

func (f *Flag) Int() *IntFlag {
	return &IntFlag{
		f: f,
	}
}

func (f *DurationFlag) Bind(cmd *cobra.Command, value time.Duration, usage string) {
	cmd.PersistentFlags().Duration(f.f.Cli, value, f.f.usage(usage))
	f.f.bind(cmd.PersistentFlags().Lookup(f.f.Cli))
}

func (f *Flag) Duration() *DurationFlag {
	return &DurationFlag{
		f: f,
	}
}

func (f *Flag) bind(pf *pflag.Flag) {
	if err := viper.BindPFlag(f.Config, pf); err != nil {
		panic(err)
	}
	if f.Env == "" {
		return
	}
	if err := viper.BindEnv(f.Config, f.Env); err != nil {
		panic(err)
	}
}

func (f *Flag) usage(usage string) string {
	if f.Env == "" {
		return usage
	}
	return usage + " (env " + f.Env + ")"
}

// NewFlag creates a new flag. The optional env names the environment variable
// the value falls back to.
func NewFlag(config, cli string, env ...string) *Flag {
	f := &Flag{
		Config: config,
		Cli:    cli,
	}
	if len(env) > 0 {
		f.Env = env[0]
	}
	return f
}

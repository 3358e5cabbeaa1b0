// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/configuration"
	"github.com/bitmark-inc/ledgertable/executive"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "caller", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'a'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		usage(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	caller := identity.Zero
	if n := len(options["caller"]); n > 1 {
		exitwithstatus.Message("%s: at most one caller option is allowed, %d were detected", program, n)
	} else if 1 == n {
		caller, err = identity.FromHex(options["caller"][0])
		if nil != err {
			exitwithstatus.Message("%s: caller: %q  error: %s", program, options["caller"][0], err)
		}
	}

	command, ok := commands[arguments[0]]
	if !ok {
		exitwithstatus.Message("%s: unknown command: %q", program, arguments[0])
	}
	if len(arguments)-1 < command.minimum {
		exitwithstatus.Message("%s: %s requires at least %d arguments", program, arguments[0], command.minimum)
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	theConfiguration.Logging.Console = len(options["verbose"]) > 0

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	definitions, err := theConfiguration.Definitions()
	if nil != err {
		log.Criticalf("catalog error: %s", err)
		exitwithstatus.Message("%s: catalog error: %s", program, err)
	}

	readOnly := storage.ReadWrite
	if !command.writes {
		readOnly = storage.ReadOnly
	}
	store, err := storage.Open(theConfiguration.Database.Name, readOnly)
	if nil != err {
		log.Criticalf("storage open: %q  error: %s", theConfiguration.Database.Name, err)
		exitwithstatus.Message("%s: storage open: %q  error: %s", program, theConfiguration.Database.Name, err)
	}
	defer store.Close()

	engine, err := executive.New(store, definitions)
	if nil != err {
		log.Criticalf("engine error: %s", err)
		exitwithstatus.Message("%s: engine error: %s", program, err)
	}

	quiet := len(options["quiet"]) > 0
	err = command.run(&session{
		engine: engine,
		caller: caller,
		quiet:  quiet,
		log:    log,
	}, arguments[1:])
	if nil != err {
		log.Errorf("%s error: %s", arguments[0], err)
		exitwithstatus.Message("%s: %s error: %s", program, arguments[0], err)
	}
}

func usage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [--caller=ADDRESS] command [arguments...]\n", program)
	fmt.Printf("\n")
	fmt.Printf("commands:\n")
	for _, name := range commandNames() {
		fmt.Printf("  %-40s - %s\n", name+" "+commands[name].arguments, commands[name].description)
	}
}

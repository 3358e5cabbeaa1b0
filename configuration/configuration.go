// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/executive"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/schema"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "tables.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "tablectl.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// DatabaseType - location of the leveldb store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// TableType - one catalog entry
type TableType struct {
	Name       string   `gluamapper:"name" json:"name"`
	Address    string   `gluamapper:"address" json:"address"`
	Key        string   `gluamapper:"key" json:"key"`
	Fields     []string `gluamapper:"fields" json:"fields"`
	Authorized []string `gluamapper:"authorized" json:"authorized"`
}

// Configuration - the decoded file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
	Tables        []TableType          `gluamapper:"tables" json:"tables"`
}

// GetConfiguration - read, decode and verify the configuration
//
// relative paths are taken from the data directory, which itself may
// be "." for the directory holding the configuration file; the
// database and log directories are created if missing
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = ensureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// file names must be plain, they are placed in their directory
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("file: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}
	options.Database.Name = ensureAbsolute(options.Database.Directory, options.Database.Name)

	return options, nil
}

// Definitions - the table catalog
func (c *Configuration) Definitions() ([]executive.Definition, error) {
	definitions := make([]executive.Definition, 0, len(c.Tables))
	for i, t := range c.Tables {
		address, err := identity.FromHex(t.Address)
		if nil != err {
			return nil, fmt.Errorf("table[%d]: %q  address: %q  error: %s", i, t.Name, t.Address, err)
		}

		authorized := make([]identity.Identity, 0, len(t.Authorized))
		for _, a := range t.Authorized {
			id, err := identity.FromHex(a)
			if nil != err {
				return nil, fmt.Errorf("table[%d]: %q  authorized: %q  error: %s", i, t.Name, a, err)
			}
			authorized = append(authorized, id)
		}

		s, err := schema.New(t.Name, t.Key, t.Fields, authorized)
		if nil != err {
			return nil, fmt.Errorf("table[%d]: %q  error: %s", i, t.Name, err)
		}

		definitions = append(definitions, executive.Definition{
			Address: address,
			Schema:  s,
		})
	}
	return definitions, nil
}

// ensure the path is absolute, if not prepend the directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package shellutils parses shell-like command input into a list of
// command lines, then renders each into the arguments and environment
// assignments to run it with.
package shellutils

// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

//go:build rp2350
// +build rp2350

package dma

// NumChannels is the number of DMA channels of the RP2350.
const NumChannels = 16

// Copyright © 2023 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package redis mirrors the DMA channel claims into a redis hash so that
// other daemons may watch them, e.g.
//
//	goes hget platina dma.channel.3
//	claimed
package redis

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
	redigo "github.com/garyburd/redigo/redis"
	"github.com/jpillora/backoff"
)

const (
	DefaultHash = "platina"

	rdtimeout = 10 * time.Second
	wrtimeout = 500 * time.Millisecond
)

// ErrBackoff is returned by Publish while waiting to redial a failed
// server.
var ErrBackoff = errors.New("redis: waiting to redial")

type Dialer func() (redigo.Conn, error)

// Dial returns a Dialer of the given server address. Addresses beginning
// with '/' or '@' are unix sockets, the rest are TCP.
func Dial(addr string) Dialer {
	network := "tcp"
	if strings.HasPrefix(addr, "/") || strings.HasPrefix(addr, "@") {
		network = "unix"
	}
	return func() (redigo.Conn, error) {
		return redigo.Dial(network, addr,
			redigo.DialConnectTimeout(wrtimeout),
			redigo.DialReadTimeout(rdtimeout),
			redigo.DialWriteTimeout(wrtimeout))
	}
}

type Publisher struct {
	sync.Mutex
	dial  Dialer
	hash  string
	conn  redigo.Conn
	b     *backoff.Backoff
	retry time.Time
	now   func() time.Time
}

func New(dial Dialer, hash string) *Publisher {
	if len(hash) == 0 {
		hash = DefaultHash
	}
	return &Publisher{
		dial: dial,
		hash: hash,
		b: &backoff.Backoff{
			Min:    100 * time.Millisecond,
			Max:    10 * time.Second,
			Factor: 2,
		},
		now: time.Now,
	}
}

func Field(ch int) string { return fmt.Sprint("dma.channel.", ch) }

const FreeField = "dma.channels.free"

// Publish the state of channels [0, n) given the claimed set.
func (p *Publisher) Publish(claimed *bitset.BitSet, n int) error {
	p.Lock()
	defer p.Unlock()
	if p.conn == nil {
		if p.now().Before(p.retry) {
			return ErrBackoff
		}
		conn, err := p.dial()
		if err != nil {
			p.failed()
			return err
		}
		p.conn = conn
	}
	free := 0
	for ch := 0; ch < n; ch++ {
		v := "claimed"
		if !claimed.Test(uint(ch)) {
			v = "free"
			free++
		}
		p.conn.Send("HSET", p.hash, Field(ch), v)
	}
	p.conn.Send("HSET", p.hash, FreeField, free)
	if _, err := p.conn.Do(""); err != nil {
		p.conn.Close()
		p.conn = nil
		p.failed()
		return err
	}
	p.b.Reset()
	p.retry = time.Time{}
	return nil
}

func (p *Publisher) failed() {
	p.retry = p.now().Add(p.b.Duration())
}

func (p *Publisher) Close() error {
	p.Lock()
	defer p.Unlock()
	var err error
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	return err
}

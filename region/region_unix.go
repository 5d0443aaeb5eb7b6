// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd

package region

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func mmap(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func unmap(addr unsafe.Pointer, size int) error {
	b := unsafe.Slice((*byte)(addr), size)
	return unix.Munmap(b)
}

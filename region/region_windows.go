// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) homemade-mm authors: adapted from cznic/memory's
// mmap_windows.go for region.Region's single up-front reservation.

//go:build windows

package region

import (
	"errors"
	"os"
	"syscall"
	"unsafe"
)

// handleMap lets unmap recover the mapping handle MapViewOfFile gave
// us, keyed by the address it returned.
var handleMap = map[uintptr]syscall.Handle{}

func mmap(size int) ([]byte, error) {
	flProtect := uint32(syscall.PAGE_READWRITE)
	dwDesiredAccess := uint32(syscall.FILE_MAP_WRITE)

	maxSizeHigh := uint32(int64(size) >> 32)
	maxSizeLow := uint32(int64(size) & 0xFFFFFFFF)

	h, errno := syscall.CreateFileMapping(syscall.InvalidHandle, nil, flProtect, maxSizeHigh, maxSizeLow, nil)
	if h == 0 {
		return nil, os.NewSyscallError("CreateFileMapping", errno)
	}

	addr, errno := syscall.MapViewOfFile(h, dwDesiredAccess, 0, 0, uintptr(size))
	if addr == 0 {
		return nil, os.NewSyscallError("MapViewOfFile", errno)
	}

	handleMap[addr] = h

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func unmap(addr unsafe.Pointer, size int) error {
	a := uintptr(addr)
	if err := syscall.UnmapViewOfFile(a); err != nil {
		return err
	}

	handle, ok := handleMap[a]
	if !ok {
		return errors.New("region: unknown base address")
	}

	delete(handleMap, a)

	return os.NewSyscallError("CloseHandle", syscall.CloseHandle(handle))
}

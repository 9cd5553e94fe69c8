//go:build !linux

package entity

import "io/fs"

// Platforms without the Linux stat shape expose no access/change
// times or POSIX identity through a portable interface; the fields
// resolve to null instead of being compiled out.

func sysTimes(info fs.FileInfo) (statTimes, bool) {
	return statTimes{}, false
}

func sysIDs(info fs.FileInfo) (uid, gid uint64, ok bool) {
	return 0, 0, false
}

func lookupOwner(uid uint64) string { return "" }

func lookupGroup(gid uint64) string { return "" }

//go:build linux

package entity

import (
	"io/fs"
	"os/user"
	"strconv"
	"syscall"
	"time"
)

func sysTimes(info fs.FileInfo) (statTimes, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return statTimes{}, false
	}
	return statTimes{
		Access: time.Unix(st.Atim.Sec, st.Atim.Nsec),
		Change: time.Unix(st.Ctim.Sec, st.Ctim.Nsec),
	}, true
}

func sysIDs(info fs.FileInfo) (uid, gid uint64, ok bool) {
	st, stOK := info.Sys().(*syscall.Stat_t)
	if !stOK {
		return 0, 0, false
	}
	return uint64(st.Uid), uint64(st.Gid), true
}

// lookupOwner resolves a uid to a user name, falling back to the
// numeric form when the id has no passwd entry.
func lookupOwner(uid uint64) string {
	u, err := user.LookupId(strconv.FormatUint(uid, 10))
	if err != nil {
		return strconv.FormatUint(uid, 10)
	}
	return u.Username
}

func lookupGroup(gid uint64) string {
	g, err := user.LookupGroupId(strconv.FormatUint(gid, 10))
	if err != nil {
		return strconv.FormatUint(gid, 10)
	}
	return g.Name
}

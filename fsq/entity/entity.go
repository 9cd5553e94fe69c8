// Package entity builds the transient records the evaluator and the
// projection step consume. A record is created per visited filesystem
// object or data line and never shared or mutated afterwards.
package entity

import (
	"io/fs"
	"path/filepath"
	"time"
)

// Record is one file, directory, or data-line entity. Absent values
// (no extension, platform without POSIX identity, unknown timestamp)
// stay at their zero value and resolve to null.
type Record struct {
	Name       string
	Path       string
	Parent     string
	Size       int64
	Filetype   string
	CreateTime time.Time
	ModifyTime time.Time
	AccessTime time.Time
	Owner      string
	Group      string
	Permission string

	Lineno   int64
	Dataline string
}

// Builder constructs records for one query run. It memoizes uid/gid
// name lookups so a traversal does not repeat them per entity.
type Builder struct {
	absolute bool
	owners   map[uint64]string
	groups   map[uint64]string
}

func NewBuilder(absolute bool) *Builder {
	return &Builder{
		absolute: absolute,
		owners:   make(map[uint64]string),
		groups:   make(map[uint64]string),
	}
}

// File builds a record for a regular file.
func (b *Builder) File(path string, info fs.FileInfo) *Record {
	rec := b.common(path, info)
	rec.Size = info.Size()
	rec.Filetype = filepath.Ext(info.Name())
	return rec
}

// Dir builds a record for a directory.
func (b *Builder) Dir(path string, info fs.FileInfo) *Record {
	return b.common(path, info)
}

// DataLine builds a record for one line of file content. lineno is
// 1-based.
func (b *Builder) DataLine(path string, lineno int64, data string) *Record {
	emitted := b.emitted(path)
	return &Record{
		Name:     filepath.Base(path),
		Path:     emitted,
		Filetype: filepath.Ext(path),
		Lineno:   lineno,
		Dataline: data,
	}
}

func (b *Builder) common(path string, info fs.FileInfo) *Record {
	emitted := b.emitted(path)
	rec := &Record{
		Name:       info.Name(),
		Path:       emitted,
		Parent:     filepath.Dir(emitted),
		ModifyTime: info.ModTime(),
		Permission: info.Mode().String(),
	}

	if st, ok := sysTimes(info); ok {
		rec.AccessTime = st.Access
		rec.CreateTime = st.Change
	}
	if uid, gid, ok := sysIDs(info); ok {
		rec.Owner = b.ownerName(uid)
		rec.Group = b.groupName(gid)
	} else {
		// No POSIX identity metadata on this platform.
		rec.Permission = ""
	}

	return rec
}

func (b *Builder) emitted(path string) string {
	if !b.absolute {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func (b *Builder) ownerName(uid uint64) string {
	if name, ok := b.owners[uid]; ok {
		return name
	}
	name := lookupOwner(uid)
	b.owners[uid] = name
	return name
}

func (b *Builder) groupName(gid uint64) string {
	if name, ok := b.groups[gid]; ok {
		return name
	}
	name := lookupGroup(gid)
	b.groups[gid] = name
	return name
}

// statTimes carries the platform timestamps beyond ModTime. Change is
// the status-change time, the closest portable stand-in for a
// creation timestamp on platforms without birth time.
type statTimes struct {
	Access time.Time
	Change time.Time
}

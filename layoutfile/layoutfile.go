// Package layoutfile reads declarative layout files.
//
// A layout file names a Go package and declares one or more fixed-offset
// structs, each an ordered list of (offset, name, visibility, type) fields
// with an optional exact total size. TOML is the primary encoding; YAML is
// accepted for projects that keep their other manifests in YAML. Both decode
// to the same specs, and hex offsets work in either:
//
//	package = "kernel"
//
//	[[structs]]
//	name = "DeviceObject"
//	size = 0x150
//	mode = "debug"
//
//	[[structs.fields]]
//	offset = 0x0
//	name = "Kind"
//	type = "uint16"
//
// The front-end resolves type strings against the target's type table and
// hands the specs to the planner untouched: field ordering is validated at
// plan time, not here.
package layoutfile

import (
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/GraybirdSoftware/offsetter/layout"
)

// Format is a layout file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is a decoded layout file.
type File struct {
	Path    string
	Package string

	// Imports are paths the generated file must import, e.g. the package
	// of a foreign pointee type. "unsafe" is added automatically when a
	// field uses unsafe.Pointer.
	Imports []string

	Structs []layout.StructSpec
}

// fileDoc is the raw decode target shared by both encodings.
type fileDoc struct {
	Package string      `toml:"package" yaml:"package"`
	Imports []string    `toml:"imports" yaml:"imports"`
	Structs []structDoc `toml:"structs" yaml:"structs"`
}

type structDoc struct {
	Name       string     `toml:"name" yaml:"name"`
	Visibility string     `toml:"visibility" yaml:"visibility"`
	Mode       string     `toml:"mode" yaml:"mode"`
	Size       *uint64    `toml:"size" yaml:"size"`
	Fields     []fieldDoc `toml:"fields" yaml:"fields"`
}

type fieldDoc struct {
	Offset     uint64 `toml:"offset" yaml:"offset"`
	Name       string `toml:"name" yaml:"name"`
	Visibility string `toml:"visibility" yaml:"visibility"`
	Type       string `toml:"type" yaml:"type"`
}

// FormatForPath maps a file extension to its encoding.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf("layout file %q: unsupported extension (want .toml, .yaml or .yml)", path)
	}
}

// Decode reads and decodes the layout file at path.
func Decode(path string, target layout.Target) (*File, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading layout file %s", path)
	}

	file, err := DecodeBytes(data, format, target)
	if err != nil {
		return nil, errors.Wrapf(err, "layout file %s", path)
	}
	file.Path = path
	return file, nil
}

// DecodeBytes decodes a layout file held in memory.
func DecodeBytes(data []byte, format Format, target layout.Target) (*File, error) {
	var doc fileDoc
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decoding TOML")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decoding YAML")
		}
	default:
		return nil, errors.Newf("unknown layout file format %q", format)
	}

	return convert(doc, target)
}

func convert(doc fileDoc, target layout.Target) (*File, error) {
	if doc.Package == "" {
		return nil, errors.New("layout file does not name a package")
	}
	if !token.IsIdentifier(doc.Package) {
		return nil, errors.Newf("package name %q is not a valid Go identifier", doc.Package)
	}
	if len(doc.Structs) == 0 {
		return nil, errors.New("layout file declares no structs")
	}

	file := &File{
		Package: doc.Package,
		Imports: doc.Imports,
	}

	// Struct collisions are detected on the cased type name, so "device"
	// and "Device" cannot both be declared public.
	seen := map[string]string{}
	for _, sd := range doc.Structs {
		if sd.Name == "" {
			return nil, errors.New("struct with no name")
		}
		if !token.IsIdentifier(sd.Name) {
			return nil, errors.Newf("struct name %q is not a valid Go identifier", sd.Name)
		}

		vis, err := parseVisibility(sd.Visibility)
		if err != nil {
			return nil, errors.Wrapf(err, "struct %s", sd.Name)
		}
		typeName := layout.GoName(sd.Name, vis)
		if prev, ok := seen[typeName]; ok {
			return nil, errors.Newf("structs %q and %q both generate type %s", prev, sd.Name, typeName)
		}
		seen[typeName] = sd.Name
		mode, err := parseMode(sd.Mode)
		if err != nil {
			return nil, errors.Wrapf(err, "struct %s", sd.Name)
		}

		spec := layout.StructSpec{
			Name:       sd.Name,
			Visibility: vis,
			Mode:       mode,
			TotalSize:  sd.Size,
		}

		// Member collisions are likewise detected post-casing: two
		// fields "value" and "Value", both public, would emit the same
		// member and break the consumer's build long after generation.
		members := map[string]string{}
		for _, fd := range sd.Fields {
			if fd.Name == "" {
				return nil, errors.Newf("struct %s: field at %#x has no name", sd.Name, fd.Offset)
			}
			if !token.IsIdentifier(fd.Name) {
				return nil, errors.Newf("struct %s: field name %q is not a valid Go identifier", sd.Name, fd.Name)
			}
			fieldVis, err := parseVisibility(fd.Visibility)
			if err != nil {
				return nil, errors.Wrapf(err, "struct %s field %s", sd.Name, fd.Name)
			}
			member := layout.GoName(fd.Name, fieldVis)
			if prev, ok := members[member]; ok {
				return nil, errors.Newf("struct %s: fields %q and %q both generate member %s",
					sd.Name, prev, fd.Name, member)
			}
			members[member] = fd.Name
			info, err := layout.ResolveType(fd.Type, target)
			if err != nil {
				return nil, errors.Wrapf(err, "struct %s field %s", sd.Name, fd.Name)
			}
			if strings.Contains(info.Expr, "unsafe.") {
				file.Imports = appendUnique(file.Imports, "unsafe")
			}
			spec.Fields = append(spec.Fields, layout.FieldSpec{
				Offset:     fd.Offset,
				Name:       fd.Name,
				Visibility: fieldVis,
				Type:       info,
			})
		}

		file.Structs = append(file.Structs, spec)
	}

	return file, nil
}

func parseVisibility(s string) (layout.Visibility, error) {
	switch s {
	case "", "public":
		return layout.Public, nil
	case "private":
		return layout.Private, nil
	default:
		return "", errors.Newf("invalid visibility %q (want public or private)", s)
	}
}

func parseMode(s string) (layout.Mode, error) {
	switch s {
	case "", "plain":
		return layout.ModePlain, nil
	case "debug":
		return layout.ModeDebug, nil
	default:
		return "", errors.Newf("invalid mode %q (want plain or debug)", s)
	}
}

func appendUnique(paths []string, path string) []string {
	for _, p := range paths {
		if p == path {
			return paths
		}
	}
	return append(paths, path)
}

package reflectread

import "github.com/saferwall/pe"

// mdtables.go decodes exactly two rows of the #~ metadata table stream:
// Assembly (table 32) and AssemblyRef (table 35). saferwall/pe parses the
// CLR directory, the stream headers, and the Module table row
// (dotnet.go's parseCLRHeaderDirectory only fills table.Content for
// Module) but leaves every other table's rows as raw CountCols-only
// entries — decoding Assembly/AssemblyRef here is the only metadata-table
// reading this package does; full type/member extraction never touches
// raw table bytes (that is the Reflector's job).

// assemblyRow is one decoded Assembly table row (ECMA-335 §II.22.2).
type assemblyRow struct {
	MajorVersion, MinorVersion, BuildNumber, RevisionNumber uint16
	PublicKeyToken                                          string // hex, derived from the public key blob
	Name                                                     string
	Culture                                                  string
}

// assemblyRefRow is one decoded AssemblyRef table row (ECMA-335 §II.22.5).
type assemblyRefRow struct {
	MajorVersion, MinorVersion, BuildNumber, RevisionNumber uint16
	PublicKeyToken                                           string
	Name                                                      string
	Culture                                                   string
}

// tableRowLayout describes the fixed-width portion of a table row used by
// rowOffset below: every table before Assembly/AssemblyRef in table index
// order contributes CountCols() rows of tableRowSize(idx) bytes toward the
// #~ stream offset of the table we actually want.
//
// This assumes the common case for the small, privately-built assemblies
// this tool targets: a 2-byte #Strings/#GUID/#Blob heap index and no
// table exceeding 2^16 rows, so every coded index and heap index below is
// fixed at 2 bytes rather than switching to 4 per the large-heap/large-
// table rules in ECMA-335 §II.24.2.6. The HeapSizes flags and row counts
// are not checked against this assumption: an assembly with larger heaps
// or tables decodes at wrong offsets without an error. Only a parse
// failure or a missing Assembly row surfaces as LoadCorruptMetadata.
func tableRowSize(idx int) int {
	switch idx {
	case pe.Module:
		return 2 + 2 + 2 + 2 + 2 // Generation, Name, Mvid, EncId, EncBaseId
	case pe.TypeRef:
		return 2 + 2 + 2 // ResolutionScope, TypeName, TypeNamespace
	case pe.TypeDef:
		return 4 + 2 + 2 + 2 + 2 + 2 // Flags, TypeName, TypeNamespace, Extends, FieldList, MethodList
	case pe.FieldPtr:
		return 2
	case pe.Field:
		return 2 + 2 + 2 // Flags, Name, Signature
	case pe.MethodPtr:
		return 2
	case pe.Method:
		return 4 + 2 + 2 + 2 + 2 + 2 // Rva, ImplFlags, Flags, Name, Signature, ParamList
	case pe.ParamPtr:
		return 2
	case pe.Param:
		return 2 + 2 + 2 // Flags, Sequence, Name
	case pe.InterfaceImpl:
		return 2 + 2 // Class, Interface
	case pe.MemberRef:
		return 2 + 2 + 2 // Class, Name, Signature
	case pe.Constant:
		return 1 + 1 + 2 + 2 // Type, Padding, Parent, Value
	case pe.CustomAttribute:
		return 2 + 2 + 2 // Parent, Type, Value
	case pe.FieldMarshal:
		return 2 + 2 // Parent, NativeType
	case pe.DeclSecurity:
		return 2 + 2 + 2 // Action, Parent, PermissionSet
	case pe.ClassLayout:
		return 2 + 4 + 2 // PackingSize, ClassSize, Parent
	case pe.FieldLayout:
		return 4 + 2 // Offset, Field
	case pe.StandAloneSig:
		return 2 // Signature
	case pe.EventMap:
		return 2 + 2 // Parent, EventList
	case pe.EventPtr:
		return 2
	case pe.Event:
		return 2 + 2 + 2 // EventFlags, Name, EventType
	case pe.PropertyMap:
		return 2 + 2 // Parent, PropertyList
	case pe.PropertyPtr:
		return 2
	case pe.Property:
		return 2 + 2 + 2 // Flags, Name, Type
	case pe.MethodSemantics:
		return 2 + 2 + 2 // Semantics, Method, Association
	case pe.MethodImpl:
		return 2 + 2 + 2 // Class, MethodBody, MethodDeclaration
	case pe.ModuleRef:
		return 2 // Name
	case pe.TypeSpec:
		return 2 // Signature
	case pe.ImplMap:
		return 2 + 2 + 2 + 2 // MappingFlags, MemberForwarded, ImportName, ImportScope
	case pe.FieldRVA:
		return 4 + 2 // Rva, Field
	case pe.ENCLog:
		return 4 + 4
	case pe.ENCMap:
		return 4
	case pe.Assembly:
		return 4 + 2 + 2 + 2 + 2 + 4 + 2 + 2 + 2 // HashAlgId, 4xVersion, Flags, PublicKey, Name, Culture
	case pe.AssemblyProcessor, pe.AssemblyOS:
		return 0
	case pe.AssemblyRef:
		return 2 + 2 + 2 + 2 + 4 + 2 + 2 + 2 + 2 // 4xVersion, Flags, PublicKeyOrToken, Name, Culture, HashValue
	default:
		return 0
	}
}

// rowOffset returns the byte offset of table's first row within the #~
// stream, by summing every lower-indexed present table's row bytes.
func rowOffset(f *pe.File, table int) (uint32, bool) {
	var offset uint32
	for idx := 0; idx < table; idx++ {
		t, present := f.CLR.MetadataTables[idx]
		if !present {
			continue
		}
		offset += uint32(tableRowSize(idx)) * t.CountCols
	}
	_, present := f.CLR.MetadataTables[table]
	return offset, present
}

func heapStream(f *pe.File) []byte {
	if s, ok := f.CLR.MetadataStreams["#~"]; ok {
		return s
	}
	return f.CLR.MetadataStreams["#-"]
}

func readUint16(b []byte, off uint32) uint16 {
	if int(off)+2 > len(b) {
		return 0
	}
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func readUint32(b []byte, off uint32) uint32 {
	if int(off)+4 > len(b) {
		return 0
	}
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func readStringHeapIndex(f *pe.File, index uint16) string {
	strings := f.CLR.MetadataStreams["#Strings"]
	start := uint32(index)
	end := start
	for end < uint32(len(strings)) && strings[end] != 0 {
		end++
	}
	if start >= uint32(len(strings)) {
		return ""
	}
	return string(strings[start:end])
}

func readPublicKeyToken(f *pe.File, blobIndex uint16) string {
	blob := f.CLR.MetadataStreams["#Blob"]
	if blobIndex == 0 || int(blobIndex) >= len(blob) {
		return ""
	}
	length := blob[blobIndex]
	start := uint32(blobIndex) + 1
	end := start + uint32(length)
	if end > uint32(len(blob)) {
		return ""
	}
	return hexEncode(blob[start:end])
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}

func decodeAssemblyRow(f *pe.File) (assemblyRow, bool) {
	offset, present := rowOffset(f, pe.Assembly)
	if !present {
		return assemblyRow{}, false
	}
	stream := heapStream(f)
	var row assemblyRow
	off := offset + 4 // skip HashAlgId
	row.MajorVersion = readUint16(stream, off)
	row.MinorVersion = readUint16(stream, off+2)
	row.BuildNumber = readUint16(stream, off+4)
	row.RevisionNumber = readUint16(stream, off+6)
	off += 8 + 4 // skip Flags
	row.PublicKeyToken = readPublicKeyToken(f, readUint16(stream, off))
	off += 2
	row.Name = readStringHeapIndex(f, readUint16(stream, off))
	off += 2
	row.Culture = readStringHeapIndex(f, readUint16(stream, off))
	return row, true
}

func decodeAssemblyRefRows(f *pe.File) []assemblyRefRow {
	offset, present := rowOffset(f, pe.AssemblyRef)
	if !present {
		return nil
	}
	t := f.CLR.MetadataTables[pe.AssemblyRef]
	stream := heapStream(f)
	rowSize := uint32(tableRowSize(pe.AssemblyRef))
	out := make([]assemblyRefRow, 0, t.CountCols)
	for i := uint32(0); i < t.CountCols; i++ {
		base := offset + i*rowSize
		var row assemblyRefRow
		row.MajorVersion = readUint16(stream, base)
		row.MinorVersion = readUint16(stream, base+2)
		row.BuildNumber = readUint16(stream, base+4)
		row.RevisionNumber = readUint16(stream, base+6)
		off := base + 8 + 4 // skip Flags
		row.PublicKeyToken = readPublicKeyToken(f, readUint16(stream, off))
		off += 2
		row.Name = readStringHeapIndex(f, readUint16(stream, off))
		off += 2
		row.Culture = readStringHeapIndex(f, readUint16(stream, off))
		out = append(out, row)
	}
	return out
}

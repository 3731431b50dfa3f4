// file: internals/features/pricing/scope/merge.go
package scope

/* =========================================================
   MergeOverride: "user menang atas global" untuk key sama
   ========================================================= */

// MergeOverride menggabungkan baris global + baris user dengan kunci natural
// (kode/code/name). Global jadi seed, lalu baris user menimpa kunci yang sama.
// Urutan hasil = urutan global, lalu kunci baru milik user di belakang —
// caller yang butuh urutan lain wajib sort sendiri.
//
// Mekanisme tunggal "user lihat override-nya sendiri, selain itu default
// bersama" — dipakai identik untuk kategori, item HSP, dan master item.
func MergeOverride[T any](userRows, globalRows []T, keyOf func(T) string) []T {
	idx := make(map[string]int, len(globalRows)+len(userRows))
	out := make([]T, 0, len(globalRows)+len(userRows))

	for _, row := range globalRows {
		k := keyOf(row)
		if at, ok := idx[k]; ok {
			out[at] = row
			continue
		}
		idx[k] = len(out)
		out = append(out, row)
	}
	for _, row := range userRows {
		k := keyOf(row)
		if at, ok := idx[k]; ok {
			out[at] = row // user menang
			continue
		}
		idx[k] = len(out)
		out = append(out, row)
	}
	return out
}

// Package document is the boundary between record descriptions on disk and
// the layout engine.
//
// An input document names a profile and data model and lists the fields in
// declaration order:
//
//	{"profile": "default", "data_model": "lp64", "packed": false,
//	 "fields": [{"name": "flags", "type": "uint8_t", "bits": 3},
//	            {"name": "len", "type": "uint32_t"}]}
//
// The same structure is accepted as YAML. Resolve turns it into field specs
// and a profile; FromLayout and Encode produce the output document.
package document

// Package serialization reads and writes tensors in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name → {dtype, shape, data_offsets}]
//	  [Tensor data: raw little-endian bytes, in sorted name order]
//
// The optional "__metadata__" header entry holds string pairs. Writers add
// a SHA-256 of the data section under the "sha256" key, which readers check
// when present.
//
// Example usage:
//
//	err := serialization.WriteSafeTensors("model.safetensors", map[string]*tensor.RawTensor{
//	    "entity_embedding": ent.Raw(),
//	}, map[string]string{"score_func": "rotate"})
//
//	file, err := serialization.ReadSafeTensors("model.safetensors", tensor.CPU)
//	ent, err := file.Tensor("entity_embedding")
package serialization

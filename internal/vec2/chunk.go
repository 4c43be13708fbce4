package vec2

// ChunkBounds returns the world-space bounds covered by the chunk at index,
// given a chunk size: [index*size, (index+1)*size) per spec §3.
func ChunkBounds(index, size Point) Bounds {
	min := index.Mul(size)
	return Bounds{Min: min, Max: min.Add(size)}
}

package streams

import (
	"encoding/binary"
	"hash/fnv"
)

// PartitionedQueue fans messages out over a fixed set of buffered channels,
// routed by a hash of the partition key. Messages sharing a key always land
// on the same partition, which gives consumers a single-writer lane per key.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

func NewPartitionedQueue[T any]() *PartitionedQueue[T] {
	return newPartitionedQueue[T](defaultNumPartitions, defaultBuffer)
}

func newPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

func (queue *PartitionedQueue[T]) Publish(partitionKey string, msg T) {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	queue.partitions[idx] <- msg
}

func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}

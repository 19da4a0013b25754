// Package corpus provides the reference passages that ground the chatbot.
//
// The built-in corpus is a fixed list of computer-science passages created
// once at startup. A directory of supplemental passages can be loaded in
// addition (see LoadDir).
package corpus

// BuiltIn returns the fixed document list used to populate the vector store.
// Order matters: document IDs are derived from list position.
func BuiltIn() []string {
	return []string{
		"Quicksort is an efficient, in-place, and unstable sorting algorithm. It works by selecting a 'pivot' element from the array and partitioning the other elements into two sub-arrays, according to whether they are less than or greater than the pivot. The sub-arrays are then sorted recursively.",
		"Python code for Quicksort:\n\ndef quicksort(arr):\n    if len(arr) <= 1:\n        return arr\n    else:\n        pivot = arr[0]\n        less = [i for i in arr[1:] if i <= pivot]\n        greater = [i for i in arr[1:] if i > pivot]\n        return quicksort(less) + [pivot] + quicksort(greater)",
		"Bubble Sort is a simple sorting algorithm that repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order. The pass through the list is repeated until the list is sorted. The algorithm gets its name from the way smaller elements 'bubble' to the top of the list.",
		"A stack is a linear data structure which follows a particular order in which the operations are performed. The order may be LIFO (Last In First Out) or FILO (First In Last Out). The primary operations on a stack are Push (add an item) and Pop (remove an item).",
		"A queue is a linear data structure which follows a particular order in which the operations are performed. The order is FIFO (First In First Out). The primary operations on a queue are Enqueue (add an item) and Dequeue (remove an item).",
	}
}

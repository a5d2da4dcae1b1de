package strategy

// rotationTables maps a team count to its rounds. Each pair holds 1-based
// positions in the ranked team list; pair order within a round is court order.
// For 7 or more teams every team meets the ranks 1, 2 and 3 places either
// side of it (wrapping), once each. Smaller pools repeat opponents evenly.
var rotationTables = map[int][][][2]int{
	4: {
		{{1, 3}, {2, 4}},
		{{1, 4}, {2, 3}},
		{{1, 2}, {3, 4}},
		{{1, 3}, {2, 4}},
		{{1, 2}, {3, 4}},
		{{1, 4}, {2, 3}},
	},
	5: {
		{{1, 3}, {4, 5}},
		{{1, 5}, {2, 3}},
		{{1, 2}, {3, 4}},
		{{3, 5}, {2, 4}},
		{{2, 5}, {1, 4}},
		{{1, 2}, {3, 4}},
		{{2, 3}, {1, 5}},
		{{4, 5}},
	},
	6: {
		{{3, 6}, {1, 2}, {4, 5}},
		{{3, 4}, {1, 6}, {2, 5}},
		{{1, 4}, {5, 6}, {2, 3}},
		{{1, 5}, {2, 4}, {3, 6}},
		{{1, 3}, {2, 5}, {4, 6}},
		{{3, 5}, {2, 6}, {1, 4}},
	},
	7: {
		{{4, 6}, {2, 7}, {1, 5}},
		{{2, 6}, {4, 5}, {1, 3}},
		{{1, 4}, {3, 6}, {5, 7}},
		{{4, 7}, {5, 6}, {2, 3}},
		{{2, 4}, {3, 5}, {1, 7}},
		{{2, 5}, {3, 7}, {1, 6}},
		{{6, 7}, {1, 2}, {3, 4}},
	},
	8: {
		{{5, 8}, {1, 2}, {3, 4}, {6, 7}},
		{{3, 5}, {1, 6}, {7, 8}, {2, 4}},
		{{2, 8}, {4, 7}, {1, 3}, {5, 6}},
		{{1, 4}, {6, 8}, {2, 3}, {5, 7}},
		{{3, 6}, {4, 5}, {2, 7}, {1, 8}},
		{{3, 8}, {4, 6}, {2, 5}, {1, 7}},
	},
	9: {
		{{2, 3}, {5, 8}, {4, 6}, {7, 9}},
		{{1, 2}, {4, 7}, {3, 5}, {6, 9}},
		{{1, 8}, {4, 5}, {3, 6}, {2, 9}},
		{{5, 7}, {1, 9}, {3, 4}, {2, 8}},
		{{1, 4}, {3, 9}, {7, 8}, {5, 6}},
		{{2, 4}, {6, 7}, {8, 9}, {1, 3}},
		{{1, 7}, {6, 8}, {2, 5}},
	},
	10: {
		{{2, 3}, {4, 6}, {7, 8}, {1, 9}},
		{{2, 9}, {5, 6}, {3, 10}, {1, 4}},
		{{6, 9}, {2, 4}, {7, 10}, {5, 8}},
		{{6, 7}, {3, 5}, {2, 10}, {1, 8}},
		{{1, 10}, {5, 7}, {3, 4}, {8, 9}},
		{{7, 9}, {1, 2}, {8, 10}, {3, 6}},
		{{2, 5}, {6, 8}, {1, 3}, {4, 7}},
		{{4, 5}, {9, 10}},
	},
	11: {
		{{3, 5}, {7, 10}, {8, 11}, {4, 6}},
		{{8, 9}, {5, 7}, {1, 11}, {2, 10}},
		{{2, 3}, {7, 8}, {6, 9}, {1, 4}},
		{{2, 4}, {9, 10}, {3, 11}, {5, 6}},
		{{4, 5}, {1, 2}, {6, 8}, {7, 9}},
		{{9, 11}, {3, 6}, {4, 7}, {1, 10}},
		{{3, 4}, {1, 9}, {2, 5}, {8, 10}},
		{{1, 3}, {2, 11}, {6, 7}, {5, 8}},
		{{10, 11}},
	},
	12: {
		{{1, 2}, {7, 9}, {5, 8}, {11, 12}},
		{{1, 4}, {2, 5}, {9, 10}, {3, 6}},
		{{8, 11}, {3, 4}, {6, 7}, {10, 12}},
		{{2, 11}, {1, 12}, {8, 9}, {5, 6}},
		{{6, 9}, {1, 10}, {2, 3}, {4, 7}},
		{{10, 11}, {7, 8}, {4, 5}, {3, 12}},
		{{9, 12}, {2, 4}, {1, 11}, {6, 8}},
		{{4, 6}, {5, 7}, {1, 3}, {8, 10}},
		{{9, 11}, {7, 10}, {3, 5}, {2, 12}},
	},
	13: {
		{{1, 2}, {5, 6}, {10, 11}, {8, 9}},
		{{1, 4}, {5, 7}, {11, 12}, {3, 13}},
		{{6, 8}, {4, 7}, {9, 10}, {2, 13}},
		{{2, 12}, {1, 3}, {5, 8}, {9, 11}},
		{{3, 6}, {2, 4}, {12, 13}, {7, 10}},
		{{8, 10}, {3, 5}, {1, 11}, {6, 9}},
		{{3, 4}, {1, 13}, {7, 9}, {10, 12}},
		{{7, 8}, {2, 5}, {4, 6}, {11, 13}},
		{{1, 12}, {4, 5}, {2, 3}, {10, 13}},
		{{8, 11}, {6, 7}, {9, 12}},
	},
	14: {
		{{13, 14}, {4, 7}, {1, 2}, {5, 8}},
		{{4, 5}, {3, 6}, {11, 12}, {9, 10}},
		{{12, 14}, {1, 3}, {7, 8}, {2, 13}},
		{{3, 5}, {7, 10}, {4, 6}, {9, 11}},
		{{8, 10}, {1, 12}, {2, 14}, {11, 13}},
		{{8, 9}, {6, 7}, {3, 4}, {2, 5}},
		{{6, 9}, {10, 12}, {1, 13}, {11, 14}},
		{{3, 14}, {8, 11}, {5, 7}, {2, 4}},
		{{5, 6}, {1, 14}, {9, 12}, {10, 13}},
		{{2, 3}, {6, 8}, {10, 11}, {7, 9}},
		{{1, 4}, {12, 13}},
	},
	15: {
		{{1, 3}, {12, 14}, {5, 6}, {8, 9}},
		{{14, 15}, {2, 4}, {11, 13}, {7, 10}},
		{{5, 8}, {1, 4}, {9, 12}, {3, 6}},
		{{10, 13}, {5, 7}, {11, 14}, {2, 15}},
		{{12, 13}, {9, 10}, {6, 8}, {3, 4}},
		{{8, 11}, {2, 5}, {1, 15}, {7, 9}},
		{{3, 15}, {13, 14}, {10, 12}, {4, 6}},
		{{4, 5}, {1, 2}, {9, 11}, {7, 8}},
		{{1, 14}, {13, 15}, {6, 7}, {2, 3}},
		{{11, 12}, {4, 7}, {3, 5}, {8, 10}},
		{{12, 15}, {2, 14}, {1, 13}, {6, 9}},
		{{10, 11}},
	},
	16: {
		{{1, 3}, {12, 13}, {7, 10}, {8, 11}},
		{{1, 2}, {14, 16}, {4, 5}, {6, 9}},
		{{15, 16}, {10, 12}, {7, 8}, {11, 13}},
		{{2, 16}, {3, 5}, {4, 6}, {14, 15}},
		{{8, 9}, {4, 7}, {11, 12}, {10, 13}},
		{{2, 3}, {11, 14}, {1, 15}, {5, 6}},
		{{1, 4}, {8, 10}, {9, 12}, {13, 16}},
		{{1, 14}, {5, 7}, {3, 6}, {2, 15}},
		{{12, 15}, {3, 16}, {10, 11}, {7, 9}},
		{{2, 4}, {5, 8}, {6, 7}, {13, 14}},
		{{13, 15}, {9, 10}, {12, 14}, {1, 16}},
		{{6, 8}, {9, 11}, {2, 5}, {3, 4}},
	},
}

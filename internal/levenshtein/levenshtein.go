package levenshtein

// Distance возвращает расстояние Левенштейна между строками a и b:
// минимальное число вставок, удалений и замен одного символа,
// переводящих a в b. Символы сравниваются по кодовым точкам (rune),
// без приведения регистра и нормализации.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)

	// Матрица (m+1)x(n+1) на одном непрерывном буфере
	backing := make([]int, (m+1)*(n+1))
	d := make([][]int, m+1)
	for i := range d {
		d[i] = backing[i*(n+1) : (i+1)*(n+1)]
	}

	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j]+1,      // удаление
				d[i][j-1]+1,      // вставка
				d[i-1][j-1]+cost, // замена
			)
		}
	}
	return d[m][n]
}
